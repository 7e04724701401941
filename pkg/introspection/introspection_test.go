package introspection_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectql/spectql/pkg/introspection"
	"github.com/spectql/spectql/pkg/starwars"
)

func typeByName(t *testing.T, data introspection.Data, name string) introspection.FullType {
	t.Helper()
	for _, fullType := range data.Schema.Types {
		if fullType.Name == name {
			return fullType
		}
	}
	t.Fatalf("type %q missing from introspection data", name)
	return introspection.FullType{}
}

func refNames(refs []introspection.TypeRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Name)
	}
	return out
}

// registrySummary flattens the generated data into one line per type and
// directive, the golden file pins the output order.
func registrySummary(s introspection.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query %s\n", s.QueryType.Name)
	if s.MutationType != nil {
		fmt.Fprintf(&b, "mutation %s\n", s.MutationType.Name)
	}
	if s.SubscriptionType != nil {
		fmt.Fprintf(&b, "subscription %s\n", s.SubscriptionType.Name)
	}
	for _, fullType := range s.Types {
		fmt.Fprintf(&b, "%s %s\n", fullType.Kind, fullType.Name)
	}
	for _, directive := range s.Directives {
		fmt.Fprintf(&b, "@%s\n", directive.Name)
	}
	return b.String()
}

func TestGenerateRegistryOrder(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())
	g := goldie.New(t)
	g.Assert(t, "starwars_registry", []byte(registrySummary(data.Schema)))
}

func TestGenerateQueryType(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())
	queryType := typeByName(t, data, "Query")

	queryJSON, err := json.MarshalIndent(queryType, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "query_type", queryJSON)
}

func TestGenerateAbstractTypes(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())

	character := typeByName(t, data, "Character")
	assert.Equal(t, "INTERFACE", character.Kind)
	// implementing objects in registry order
	assert.Equal(t, []string{"Droid", "Human"}, refNames(character.PossibleTypes))

	searchResult := typeByName(t, data, "SearchResult")
	assert.Equal(t, "UNION", searchResult.Kind)
	// union members in declaration order
	assert.Equal(t, []string{"Human", "Droid", "Starship"}, refNames(searchResult.PossibleTypes))

	human := typeByName(t, data, "Human")
	assert.Equal(t, []string{"Character"}, refNames(human.Interfaces))
}

func TestGenerateDefaultsAndWrappers(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())

	human := typeByName(t, data, "Human")
	var height *introspection.Field
	for i := range human.Fields {
		if human.Fields[i].Name == "height" {
			height = &human.Fields[i]
		}
	}
	require.NotNil(t, height)
	require.Len(t, height.Args, 1)
	require.NotNil(t, height.Args[0].DefaultValue)
	assert.Equal(t, "METER", *height.Args[0].DefaultValue)

	reviewInput := typeByName(t, data, "ReviewInput")
	require.Len(t, reviewInput.InputFields, 2)
	stars := reviewInput.InputFields[0]
	assert.Equal(t, "stars", stars.Name)
	assert.Nil(t, stars.DefaultValue)
	assert.Equal(t, "NON_NULL", stars.Type.Kind)
	require.NotNil(t, stars.Type.OfType)
	assert.Equal(t, "Int", stars.Type.OfType.Name)
}

func TestGenerateEnumsAndScalars(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())

	episode := typeByName(t, data, "Episode")
	assert.Equal(t, "The episodes of the original trilogy.", episode.Description)
	names := make([]string, 0, len(episode.EnumValues))
	for _, value := range episode.EnumValues {
		names = append(names, value.Name)
	}
	assert.Equal(t, []string{"NEWHOPE", "EMPIRE", "JEDI"}, names)

	intScalar := typeByName(t, data, "Int")
	assert.Equal(t, "SCALAR", intScalar.Kind)
	assert.Equal(t, "A signed 32 bit integer.", intScalar.Description)
}

func TestGenerateDirectives(t *testing.T) {
	data := introspection.Generate(starwars.NewSchema())
	require.Len(t, data.Schema.Directives, 3)

	skip := data.Schema.Directives[2]
	assert.Equal(t, "skip", skip.Name)
	assert.Equal(t, []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}, skip.Locations)
	require.Len(t, skip.Args, 1)
	assert.Equal(t, "if", skip.Args[0].Name)
	assert.Equal(t, "NON_NULL", skip.Args[0].Type.Kind)
}
