package starwars

import "strings"

// CharacterData is the raw record behind a Human or Droid.
type CharacterData struct {
	ID              string
	Name            string
	Friends         []string
	AppearsIn       []string
	HomePlanet      string
	Height          float64
	PrimaryFunction string
	IsDroid         bool
}

type StarshipData struct {
	ID     string
	Name   string
	Length float64
}

type ReviewData struct {
	Episode    string
	Stars      int64
	Commentary string
}

// Store holds the fixture data. Reviews accumulate as mutations create them.
type Store struct {
	characters map[string]*CharacterData
	starships  map[string]*StarshipData
	order      []string
	Reviews    []ReviewData
}

func NewStore() *Store {
	store := &Store{
		characters: map[string]*CharacterData{},
		starships:  map[string]*StarshipData{},
	}

	all := []string{"NEWHOPE", "EMPIRE", "JEDI"}
	for _, character := range []*CharacterData{
		{ID: "1000", Name: "Luke Skywalker", Friends: []string{"1002", "1003", "2000", "2001"}, AppearsIn: all, HomePlanet: "Tatooine", Height: 1.72},
		{ID: "1001", Name: "Darth Vader", Friends: []string{"1004"}, AppearsIn: all, HomePlanet: "Tatooine", Height: 2.02},
		{ID: "1002", Name: "Han Solo", Friends: []string{"1000", "1003", "2001"}, AppearsIn: all, Height: 1.8},
		{ID: "1003", Name: "Leia Organa", Friends: []string{"1000", "1002", "2000", "2001"}, AppearsIn: all, HomePlanet: "Alderaan", Height: 1.5},
		{ID: "1004", Name: "Wilhuff Tarkin", Friends: []string{"1001"}, AppearsIn: []string{"NEWHOPE"}, Height: 1.8},
		{ID: "2000", Name: "C-3PO", Friends: []string{"1000", "1002", "1003", "2001"}, AppearsIn: all, PrimaryFunction: "Protocol", IsDroid: true},
		{ID: "2001", Name: "R2-D2", Friends: []string{"1000", "1002", "1003"}, AppearsIn: all, PrimaryFunction: "Astromech", IsDroid: true},
	} {
		store.characters[character.ID] = character
		store.order = append(store.order, character.ID)
	}

	for _, starship := range []*StarshipData{
		{ID: "3000", Name: "Millennium Falcon", Length: 34.37},
		{ID: "3001", Name: "X-Wing", Length: 12.5},
	} {
		store.starships[starship.ID] = starship
	}

	return store
}

// Hero returns R2-D2, except for the empire era where Luke is the hero.
func (s *Store) Hero(episode string) *CharacterData {
	if episode == "EMPIRE" {
		return s.characters["1000"]
	}
	return s.characters["2001"]
}

func (s *Store) Character(id string) *CharacterData {
	return s.characters[id]
}

func (s *Store) Human(id string) *CharacterData {
	if character, ok := s.characters[id]; ok && !character.IsDroid {
		return character
	}
	return nil
}

func (s *Store) Droid(id string) *CharacterData {
	if character, ok := s.characters[id]; ok && character.IsDroid {
		return character
	}
	return nil
}

// Search matches characters and starships by name substring, characters in
// fixture order first.
func (s *Store) Search(text string) (characters []*CharacterData, starships []*StarshipData) {
	for _, id := range s.order {
		if containsFold(s.characters[id].Name, text) {
			characters = append(characters, s.characters[id])
		}
	}
	for _, id := range []string{"3000", "3001"} {
		if containsFold(s.starships[id].Name, text) {
			starships = append(starships, s.starships[id])
		}
	}
	return characters, starships
}

func (s *Store) AddReview(review ReviewData) {
	s.Reviews = append(s.Reviews, review)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
