// Package graphql is the top level request surface. An Engine owns a schema
// and the root resolvers and turns wire requests into complete responses:
// parse, validate, cache the document, execute, render errors.
package graphql

import (
	"context"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/jensneuse/abstractlogger"
	"github.com/pkg/errors"

	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/astparser"
	"github.com/spectql/spectql/pkg/astvalidation"
	"github.com/spectql/spectql/pkg/execution"
	"github.com/spectql/spectql/pkg/graphqlerrors"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/schema"
)

const DefaultDocumentCacheSize = 1024

var (
	ErrMutationUndefined     = errors.New("graphql: no mutation resolver configured")
	ErrSubscriptionUndefined = errors.New("graphql: no subscription resolver configured")
)

type Engine struct {
	definitions          *schema.Schema
	queryResolver        execution.Resolver
	mutationResolver     execution.Resolver
	subscriptionResolver execution.Resolver
	validator            astvalidation.Validator
	executor             *execution.Executor
	documentCache        *lru.Cache // nil when caching is disabled
	log                  abstractlogger.Logger
}

type engineOptions struct {
	mutationResolver     execution.Resolver
	subscriptionResolver execution.Resolver
	validator            astvalidation.Validator
	log                  abstractlogger.Logger
	cacheSize            int
	concurrent           bool
}

type EngineOption func(*engineOptions)

func WithMutationResolver(resolver execution.Resolver) EngineOption {
	return func(o *engineOptions) {
		o.mutationResolver = resolver
	}
}

func WithSubscriptionResolver(resolver execution.Resolver) EngineOption {
	return func(o *engineOptions) {
		o.subscriptionResolver = resolver
	}
}

// WithValidator replaces the default precondition validator, e.g. with a full
// rule set.
func WithValidator(validator astvalidation.Validator) EngineOption {
	return func(o *engineOptions) {
		o.validator = validator
	}
}

func WithEngineLogger(log abstractlogger.Logger) EngineOption {
	return func(o *engineOptions) {
		o.log = log
	}
}

// WithDocumentCacheSize sizes the parsed document cache. Zero disables
// caching.
func WithDocumentCacheSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.cacheSize = size
	}
}

// WithConcurrentExecution resolves sibling fields concurrently.
func WithConcurrentExecution() EngineOption {
	return func(o *engineOptions) {
		o.concurrent = true
	}
}

func NewEngine(definitions *schema.Schema, queryResolver execution.Resolver, options ...EngineOption) (*Engine, error) {
	opts := engineOptions{
		validator: astvalidation.DefaultOperationValidator(),
		log:       abstractlogger.NoopLogger,
		cacheSize: DefaultDocumentCacheSize,
	}
	for _, option := range options {
		option(&opts)
	}

	executorOptions := []execution.Option{execution.WithLogger(opts.log)}
	if opts.concurrent {
		executorOptions = append(executorOptions, execution.WithConcurrentFieldResolution())
	}

	e := &Engine{
		definitions:          definitions,
		queryResolver:        queryResolver,
		mutationResolver:     opts.mutationResolver,
		subscriptionResolver: opts.subscriptionResolver,
		validator:            opts.validator,
		executor:             execution.NewExecutor(definitions, executorOptions...),
		log:                  opts.log,
	}

	if opts.cacheSize > 0 {
		cache, err := lru.New(opts.cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "graphql: document cache")
		}
		e.documentCache = cache
	}

	return e, nil
}

// Execute runs a query or mutation request end to end. The returned response
// is always usable, request failures surface as response errors, never as a
// Go error.
func (e *Engine) Execute(ctx context.Context, request Request) *Response {
	document, requestErrors := e.prepareDocument(request)
	if requestErrors != nil {
		return &Response{Errors: requestErrors}
	}

	operation, requestErrors := e.selectOperation(document, request.OperationName)
	if requestErrors != nil {
		return &Response{Errors: requestErrors}
	}

	root, err := e.rootResolver(operation.OperationType)
	if err != nil {
		return &Response{Errors: graphqlerrors.RequestErrorsFromError(err)}
	}

	variables, err := variableValues(operation, request.Variables)
	if err != nil {
		return &Response{Errors: graphqlerrors.RequestErrorsFromError(err)}
	}

	data, fieldErrors, err := e.executor.Execute(ctx, document, request.OperationName, variables, root)
	if err != nil {
		return &Response{Errors: graphqlerrors.RequestErrorsFromError(err)}
	}

	e.log.Debug("graphql.Engine.Execute",
		abstractlogger.String("operation", request.OperationName),
		abstractlogger.Int("fieldErrors", len(fieldErrors)),
	)

	response := &Response{Data: data, executed: true}
	for _, fieldError := range fieldErrors {
		external := fieldError.ExternalError()
		response.Errors = append(response.Errors, graphqlerrors.RequestError{
			Message:   external.Message,
			Locations: external.Locations,
			Path:      external.Path,
		})
	}
	return response
}

// ResolveStream runs a subscription request and hands out the result stream.
// Unlike Execute, request failures return a Go error, there is no response
// body to carry them in.
func (e *Engine) ResolveStream(ctx context.Context, request Request) (*execution.Stream, error) {
	document, requestErrors := e.prepareDocument(request)
	if requestErrors != nil {
		return nil, requestErrors
	}

	operation, requestErrors := e.selectOperation(document, request.OperationName)
	if requestErrors != nil {
		return nil, requestErrors
	}

	if operation.OperationType != ast.OperationTypeSubscription {
		return nil, execution.ErrNotSubscription
	}
	if e.subscriptionResolver == nil {
		return nil, ErrSubscriptionUndefined
	}

	variables, err := variableValues(operation, request.Variables)
	if err != nil {
		return nil, err
	}

	return e.executor.ResolveStream(ctx, document, request.OperationName, variables, e.subscriptionResolver)
}

// prepareDocument parses and validates the request query, serving repeated
// queries out of the document cache. Only documents that passed validation
// are cached.
func (e *Engine) prepareDocument(request Request) (*ast.Document, graphqlerrors.RequestErrors) {
	var key uint64
	if e.documentCache != nil {
		key = xxhash.Sum64String(request.Query)
		if cached, ok := e.documentCache.Get(key); ok {
			e.log.Debug("graphql.Engine.prepareDocument",
				abstractlogger.Bool("cached", true),
			)
			return cached.(*ast.Document), nil
		}
	}

	document, report := astparser.ParseDocumentString(e.definitions, request.Query)
	if report.HasErrors() {
		return nil, graphqlerrors.RequestErrorsFromOperationReport(report)
	}

	var validationReport operationreport.Report
	e.validator.Validate(document, e.definitions, &validationReport)
	if validationReport.HasErrors() {
		return nil, graphqlerrors.RequestErrorsFromOperationReport(validationReport)
	}

	if e.documentCache != nil {
		e.documentCache.Add(key, document)
	}
	return document, nil
}

func (e *Engine) selectOperation(document *ast.Document, operationName string) (*ast.OperationDefinition, graphqlerrors.RequestErrors) {
	operation, ok := document.OperationByName(operationName)
	if ok {
		return operation, nil
	}

	var report operationreport.Report
	switch {
	case operationName != "":
		report.AddExternalError(operationreport.ErrOperationWithProvidedOperationNameNotFound(operationName))
	case len(document.OperationDefinitions()) == 0:
		report.AddExternalError(operationreport.ErrDocumentDoesntContainExecutableOperation())
	default:
		report.AddExternalError(operationreport.ErrRequiredOperationNameIsMissing())
	}
	return nil, graphqlerrors.RequestErrorsFromOperationReport(report)
}

func (e *Engine) rootResolver(operationType ast.OperationType) (execution.Resolver, error) {
	switch operationType {
	case ast.OperationTypeMutation:
		if e.mutationResolver == nil {
			return nil, ErrMutationUndefined
		}
		return e.mutationResolver, nil
	case ast.OperationTypeSubscription:
		return nil, execution.ErrSubscriptionOperation
	default:
		return e.queryResolver, nil
	}
}
