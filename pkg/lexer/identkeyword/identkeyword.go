// Package identkeyword resolves IDENT tokens into the name keywords the
// parser dispatches on. Every other identifier maps to UNDEFINED.
package identkeyword

type IdentKeyword int

const (
	UNDEFINED IdentKeyword = iota
	QUERY
	MUTATION
	SUBSCRIPTION
	FRAGMENT
	ON
	TRUE
	FALSE
	NULL
)

func (k IdentKeyword) String() string {
	switch k {
	case QUERY:
		return "QUERY"
	case MUTATION:
		return "MUTATION"
	case SUBSCRIPTION:
		return "SUBSCRIPTION"
	case FRAGMENT:
		return "FRAGMENT"
	case ON:
		return "ON"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case NULL:
		return "NULL"
	default:
		return "UNDEFINED"
	}
}

func KeywordFromLiteral(literal string) IdentKeyword {
	switch len(literal) {
	case 2:
		if literal == "on" {
			return ON
		}
	case 4:
		switch literal {
		case "true":
			return TRUE
		case "null":
			return NULL
		}
	case 5:
		switch literal {
		case "false":
			return FALSE
		case "query":
			return QUERY
		}
	case 8:
		switch literal {
		case "mutation":
			return MUTATION
		case "fragment":
			return FRAGMENT
		}
	case 12:
		if literal == "subscription" {
			return SUBSCRIPTION
		}
	}
	return UNDEFINED
}
