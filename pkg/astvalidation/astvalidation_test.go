package astvalidation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectql/spectql/pkg/astparser"
	"github.com/spectql/spectql/pkg/astvalidation"
	"github.com/spectql/spectql/pkg/operationreport"
	"github.com/spectql/spectql/pkg/starwars"
)

func validate(t *testing.T, input string) operationreport.Report {
	t.Helper()
	definitions := starwars.NewSchema()
	document, report := astparser.ParseDocumentString(definitions, input)
	require.False(t, report.HasErrors(), "parse error: %s", report.Error())

	var validationReport operationreport.Report
	astvalidation.DefaultOperationValidator().Validate(document, definitions, &validationReport)
	return validationReport
}

func TestValidDocument(t *testing.T) {
	report := validate(t, `
		query Hero($episode: Episode) {
			hero(episode: $episode) {
				name
				...characterFields
				... on Human { homePlanet }
			}
		}
		fragment characterFields on Character {
			id
			appearsIn
		}`)
	assert.False(t, report.HasErrors())
}

func TestUndefinedFragment(t *testing.T) {
	report := validate(t, `{ hero { ...nowhere } }`)
	require.Len(t, report.ExternalErrors, 1)
	assert.Equal(t, `fragment "nowhere" undefined`, report.ExternalErrors[0].Message)
	require.Len(t, report.ExternalErrors[0].Locations, 1)
	assert.Equal(t, uint32(1), report.ExternalErrors[0].Locations[0].Line)
}

func TestUndefinedField(t *testing.T) {
	report := validate(t, `{ hero { name favoriteColor } }`)
	require.Len(t, report.ExternalErrors, 1)
	assert.Equal(t, `field "favoriteColor" undefined on type "Character"`, report.ExternalErrors[0].Message)
}

func TestFieldOnConcreteTypeViaFragment(t *testing.T) {
	// homePlanet lives on Human, not on the Character interface
	report := validate(t, `{ hero { homePlanet } }`)
	require.Len(t, report.ExternalErrors, 1)
	assert.Equal(t, `field "homePlanet" undefined on type "Character"`, report.ExternalErrors[0].Message)
}

func TestUndefinedVariable(t *testing.T) {
	report := validate(t, `query Hero { hero(episode: $episode) { name } }`)
	require.Len(t, report.ExternalErrors, 1)
	assert.Equal(t, `variable "episode" undefined`, report.ExternalErrors[0].Message)
}

func TestUndefinedVariableInsideFragmentAndDirective(t *testing.T) {
	report := validate(t, `
		query Hero($episode: Episode) {
			hero(episode: $episode) {
				...conditional
			}
		}
		fragment conditional on Character {
			name @include(if: $withName)
		}`)
	require.Len(t, report.ExternalErrors, 1)
	assert.Equal(t, `variable "withName" undefined`, report.ExternalErrors[0].Message)
}

func TestRecursiveFragmentDoesNotLoop(t *testing.T) {
	report := validate(t, `
		{ hero { ...a } }
		fragment a on Character { id ...a }`)
	assert.False(t, report.HasErrors())
}
