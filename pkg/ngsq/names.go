package ngsq

import (
	"golang.org/x/text/cases"
)

// Common given names of the report's families, used to guess sex when the notes
// do not say "He married" or "She married"
var (
	defaultFemaleNames = []string{
		"Adele", "Alice", "Amelia", "Andrea", "Ann", "Annie", "Antoinette",
		"Aurora", "Barbara", "Bernice", "Carol", "Catherine", "Cecilia",
		"Cynthia", "Daphne", "Denise", "Donna", "Elizabeth", "Emily", "Esme",
		"Esther", "Eugenia", "Eva", "Evelyn", "Farrah", "Gail", "Geneva",
		"Genevieve", "Genie", "Hazel", "Helen", "Hindth", "Irene", "Isabelle",
		"Jamalie", "Jane", "Janet", "Jean", "Joan", "Josephine", "Joyce", "Julia",
		"Julie", "Juliet", "Juliette", "Karen", "Katherine", "Kyla", "Lillian",
		"Linda", "Loretta", "Lorraine", "Louise", "Lulu", "Lynn", "Madeline",
		"Mamie", "Margaret", "Marguerite", "Maria", "Mariam", "Marie", "Marina",
		"Marion", "Martha", "Mary", "Matilda", "Mercedes", "Meriana", "Minera",
		"Morena", "Nancy", "Odette", "Patricia", "Paula", "Paulette", "Rebecca",
		"Regina", "Rita", "Roberta", "Rochelle", "Rosa", "Rose", "Sadie", "Sandra",
		"Sarah", "Sarrauff", "Serena", "Sevilla", "Shaheedy", "Shela", "Shirley",
		"Sister", "Suraya", "Susan", "Suzette", "Sylvia", "Theresa", "Thresa",
		"Veronica", "Victoria", "Virginia", "Yamile", "Yvonne",
	}
	defaultMaleNames = []string{
		"Abdullah", "Abraham", "Adrian", "Albert", "Allan", "Alsyus", "Anthony",
		"Antonio", "Badaoui", "Boutrous", "Brent", "Brian", "Cameron", "Charles",
		"Chester", "Christopher", "Daniel", "Dave", "David", "Derek", "Edward",
		"Elias", "Eugene", "Felix", "Francis", "Frank", "Fred", "Frederick",
		"Gabriel", "Garth", "Gary", "George", "Gerald", "Gordon", "Haid", "Harold",
		"James", "Jerges", "Jerry", "John", "Jorge", "Joseph", "Kevin", "Khalil",
		"Louis", "Male", "Marshall", "Maurice", "Michael", "Nahman", "Paul", "Peter",
		"Philip", "Pierre", "Rafoul", "Randolph", "Raymond", "Rev.", "Richard",
		"Rob", "Robert", "Roger", "Ronald", "Ronnie", "Roy", "Salim", "Salomon",
		"Simon", "Stephan", "Tannous", "Thomas", "Tony", "Vincent", "Wadih",
		"William", "Youssef",
	}
)

// NameTables maps given names to a sex, case-insensitively
type NameTables struct {
	female map[string]struct{}
	male   map[string]struct{}
}

// DefaultNames returns the built-in given-name tables
func DefaultNames() *NameTables {
	return NewNameTables(defaultFemaleNames, defaultMaleNames)
}

// NewNameTables builds tables from the given lists
func NewNameTables(female, male []string) *NameTables {
	t := &NameTables{
		female: make(map[string]struct{}, len(female)),
		male:   make(map[string]struct{}, len(male)),
	}
	t.add(female, male)
	return t
}

// WithExtra returns a copy of t with more names added
func (t *NameTables) WithExtra(female, male []string) *NameTables {
	result := NewNameTables(nil, nil)
	for k := range t.female {
		result.female[k] = struct{}{}
	}
	for k := range t.male {
		result.male[k] = struct{}{}
	}
	result.add(female, male)
	return result
}

func (t *NameTables) add(female, male []string) {
	fold := cases.Fold()
	for _, name := range female {
		t.female[fold.String(name)] = struct{}{}
	}
	for _, name := range male {
		t.male[fold.String(name)] = struct{}{}
	}
}

// SexOf looks a given name up in the female table, then the male table
func (t *NameTables) SexOf(given string) Sex {
	key := cases.Fold().String(given)
	if _, ok := t.female[key]; ok {
		return SexFemale
	}
	if _, ok := t.male[key]; ok {
		return SexMale
	}
	return SexUnknown
}
