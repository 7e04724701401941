package starwars

import (
	"context"
	"fmt"

	"github.com/spectql/spectql/pkg/execution"
)

// QueryResolver is the query root.
type QueryResolver struct {
	Store *Store
}

func NewQueryResolver() *QueryResolver {
	return &QueryResolver{Store: NewStore()}
}

func (*QueryResolver) TypeName() string { return "Query" }

func (q *QueryResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	switch fieldName {
	case "hero":
		episode, _ := args.String("episode")
		return &CharacterResolver{Store: q.Store, Data: q.Store.Hero(episode)}, nil
	case "human":
		id, _ := args.String("id")
		if human := q.Store.Human(id); human != nil {
			return &HumanResolver{Store: q.Store, Data: human}, nil
		}
		return nil, fmt.Errorf("human %s not found", id)
	case "droid":
		id, _ := args.String("id")
		if droid := q.Store.Droid(id); droid != nil {
			return &DroidResolver{Store: q.Store, Data: droid}, nil
		}
		return nil, fmt.Errorf("droid %s not found", id)
	case "character":
		id, _ := args.String("id")
		if character := q.Store.Character(id); character != nil {
			return &CharacterResolver{Store: q.Store, Data: character}, nil
		}
		return nil, nil
	case "search":
		text, _ := args.String("text")
		characters, starships := q.Store.Search(text)
		results := make([]any, 0, len(characters)+len(starships))
		for _, character := range characters {
			results = append(results, &CharacterResolver{Store: q.Store, Data: character})
		}
		for _, starship := range starships {
			results = append(results, &StarshipResolver{Data: starship})
		}
		return results, nil
	default:
		return nil, fmt.Errorf("unknown field Query.%s", fieldName)
	}
}

// CharacterResolver resolves the Character interface fields and narrows to
// the concrete Human or Droid resolver for fragment type conditions.
type CharacterResolver struct {
	Store *Store
	Data  *CharacterData
}

func (c *CharacterResolver) TypeName() string {
	if c.Data.IsDroid {
		return "Droid"
	}
	return "Human"
}

func (c *CharacterResolver) ResolveType(typeName string) (execution.Resolver, bool) {
	switch typeName {
	case "Character", "SearchResult":
		return c, true
	case "Human":
		if !c.Data.IsDroid {
			return &HumanResolver{Store: c.Store, Data: c.Data}, true
		}
	case "Droid":
		if c.Data.IsDroid {
			return &DroidResolver{Store: c.Store, Data: c.Data}, true
		}
	}
	return nil, false
}

func (c *CharacterResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	return resolveCharacterField(c.Store, c.Data, fieldName)
}

func resolveCharacterField(store *Store, data *CharacterData, fieldName string) (any, error) {
	switch fieldName {
	case "id":
		return data.ID, nil
	case "name":
		return data.Name, nil
	case "friends":
		friends := make([]any, 0, len(data.Friends))
		for _, id := range data.Friends {
			friends = append(friends, &CharacterResolver{Store: store, Data: store.Character(id)})
		}
		return friends, nil
	case "appearsIn":
		episodes := make([]any, 0, len(data.AppearsIn))
		for _, episode := range data.AppearsIn {
			episodes = append(episodes, episode)
		}
		return episodes, nil
	default:
		return nil, fmt.Errorf("unknown field Character.%s", fieldName)
	}
}

type HumanResolver struct {
	Store *Store
	Data  *CharacterData
}

func (*HumanResolver) TypeName() string { return "Human" }

func (h *HumanResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	switch fieldName {
	case "homePlanet":
		if h.Data.HomePlanet == "" {
			return nil, nil
		}
		return h.Data.HomePlanet, nil
	case "height":
		return lengthInUnit(h.Data.Height, args), nil
	default:
		return resolveCharacterField(h.Store, h.Data, fieldName)
	}
}

type DroidResolver struct {
	Store *Store
	Data  *CharacterData
}

func (*DroidResolver) TypeName() string { return "Droid" }

func (d *DroidResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	if fieldName == "primaryFunction" {
		return d.Data.PrimaryFunction, nil
	}
	return resolveCharacterField(d.Store, d.Data, fieldName)
}

type StarshipResolver struct {
	Data *StarshipData
}

func (*StarshipResolver) TypeName() string { return "Starship" }

func (s *StarshipResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	switch fieldName {
	case "id":
		return s.Data.ID, nil
	case "name":
		return s.Data.Name, nil
	case "length":
		return lengthInUnit(s.Data.Length, args), nil
	default:
		return nil, fmt.Errorf("unknown field Starship.%s", fieldName)
	}
}

const feetPerMeter = 3.28084

func lengthInUnit(meters float64, args execution.Arguments) float64 {
	if unit, _ := args.String("unit"); unit == "FOOT" {
		return meters * feetPerMeter
	}
	return meters
}

// MutationResolver is the mutation root.
type MutationResolver struct {
	Store *Store
}

func (*MutationResolver) TypeName() string { return "Mutation" }

func (m *MutationResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	if fieldName != "createReview" {
		return nil, fmt.Errorf("unknown field Mutation.%s", fieldName)
	}

	episode, _ := args.String("episode")
	review, ok := args.Value("review")
	if !ok || review.Kind != execution.ValueKindObject {
		return nil, fmt.Errorf("review input is required")
	}

	data := ReviewData{Episode: episode}
	if stars, ok := review.FieldByName("stars"); ok && stars.Kind == execution.ValueKindInt {
		data.Stars = stars.Int
	}
	if commentary, ok := review.FieldByName("commentary"); ok && commentary.Kind == execution.ValueKindString {
		data.Commentary = commentary.Str
	}
	if data.Stars < 1 || data.Stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5, got %d", data.Stars)
	}

	m.Store.AddReview(data)
	return &ReviewResolver{Data: data}, nil
}

type ReviewResolver struct {
	Data ReviewData
}

func (*ReviewResolver) TypeName() string { return "Review" }

func (r *ReviewResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	switch fieldName {
	case "episode":
		if r.Data.Episode == "" {
			return nil, nil
		}
		return r.Data.Episode, nil
	case "stars":
		return r.Data.Stars, nil
	case "commentary":
		if r.Data.Commentary == "" {
			return nil, nil
		}
		return r.Data.Commentary, nil
	default:
		return nil, fmt.Errorf("unknown field Review.%s", fieldName)
	}
}

// SubscriptionResolver is the subscription root. Events pushed into the
// source channel become reviewAdded results.
type SubscriptionResolver struct {
	Source <-chan any
}

func (*SubscriptionResolver) TypeName() string { return "Subscription" }

func (s *SubscriptionResolver) ResolveField(ctx context.Context, fieldName string, args execution.Arguments) (any, error) {
	if fieldName != "reviewAdded" {
		return nil, fmt.Errorf("unknown field Subscription.%s", fieldName)
	}
	return s.Source, nil
}
