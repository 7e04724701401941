package graphql

import (
	"encoding/json"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/spectql/spectql/internal/pkg/unsafebytes"
	"github.com/spectql/spectql/pkg/ast"
	"github.com/spectql/spectql/pkg/execution"
)

// variableValues decodes the request variables and fills in the operation's
// variable defaults for every variable the request leaves out. An explicit
// null counts as provided and is not defaulted.
func variableValues(operation *ast.OperationDefinition, raw json.RawMessage) (execution.Variables, error) {
	doc := "{}"
	if len(raw) != 0 {
		doc = unsafebytes.BytesToString(raw)
	}
	if !gjson.Valid(doc) {
		return nil, errors.New("graphql: variables are not valid JSON")
	}

	for i := range operation.VariableDefinitions {
		definition := &operation.VariableDefinitions[i]
		if definition.DefaultValue == nil {
			continue
		}
		if gjson.Get(doc, definition.Name).Exists() {
			continue
		}
		fallback, err := execution.ValueFromAST(definition.DefaultValue, nil).MarshalJSON()
		if err != nil {
			return nil, errors.Wrapf(err, "graphql: render default for variable %q", definition.Name)
		}
		doc, err = sjson.SetRaw(doc, definition.Name, unsafebytes.BytesToString(fallback))
		if err != nil {
			return nil, errors.Wrapf(err, "graphql: set default for variable %q", definition.Name)
		}
	}

	variables := execution.Variables{}
	err := jsonparser.ObjectEach(unsafebytes.StringToBytes(doc), func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		parsed, err := valueFromJSON(value, dataType)
		if err != nil {
			return err
		}
		variables[string(key)] = parsed
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "graphql: decode variables")
	}
	return variables, nil
}

func valueFromJSON(data []byte, dataType jsonparser.ValueType) (execution.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return execution.Null(), nil
	case jsonparser.Boolean:
		parsed, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return execution.Value{}, err
		}
		return execution.BooleanValue(parsed), nil
	case jsonparser.Number:
		if parsed, err := jsonparser.ParseInt(data); err == nil {
			return execution.IntValue(parsed), nil
		}
		parsed, err := jsonparser.ParseFloat(data)
		if err != nil {
			return execution.Value{}, err
		}
		return execution.FloatValue(parsed), nil
	case jsonparser.String:
		parsed, err := jsonparser.ParseString(data)
		if err != nil {
			return execution.Value{}, err
		}
		return execution.StringValue(parsed), nil
	case jsonparser.Array:
		items := []execution.Value{}
		var itemErr error
		_, err := jsonparser.ArrayEach(data, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
			if itemErr != nil {
				return
			}
			parsed, err := valueFromJSON(item, itemType)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, parsed)
		})
		if err != nil {
			return execution.Value{}, err
		}
		if itemErr != nil {
			return execution.Value{}, itemErr
		}
		return execution.ListValue(items...), nil
	case jsonparser.Object:
		out := execution.ObjectValue()
		err := jsonparser.ObjectEach(data, func(key, value []byte, valueType jsonparser.ValueType, _ int) error {
			parsed, err := valueFromJSON(value, valueType)
			if err != nil {
				return err
			}
			out.SetField(string(key), parsed)
			return nil
		})
		if err != nil {
			return execution.Value{}, err
		}
		return out, nil
	default:
		return execution.Value{}, errors.Errorf("graphql: unsupported JSON value of type %s", dataType)
	}
}
