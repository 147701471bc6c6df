package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
)

// NewPersonInput contains the parameters for adding a person.
type NewPersonInput struct {
	Name     string // Name (required)
	Email    string
	Position string
	Company  string
}

// NewPersonOutput contains the result of adding a person.
type NewPersonOutput struct {
	Person *domain.Person
}

// NewPerson is the use case for adding someone tasks can be assigned to.
type NewPerson struct {
	people domain.PersonRepository
	logger domain.Logger
}

// NewNewPerson creates a new NewPerson use case.
func NewNewPerson(people domain.PersonRepository, logger domain.Logger) *NewPerson {
	return &NewPerson{people: people, logger: logger}
}

// Execute stores the person.
func (uc *NewPerson) Execute(_ context.Context, in NewPersonInput) (*NewPersonOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	person := &domain.Person{
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		Position: strings.TrimSpace(in.Position),
		Company:  strings.TrimSpace(in.Company),
	}
	if err := uc.people.CreatePerson(person); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(0, "person", fmt.Sprintf("added #%d: %s", person.ID, person))
	}
	return &NewPersonOutput{Person: person}, nil
}

// ListPeopleInput contains the parameters for listing people.
type ListPeopleInput struct{}

// ListPeopleOutput contains every person ordered by name.
type ListPeopleOutput struct {
	People []*domain.Person
}

// ListPeople is the use case for listing people.
type ListPeople struct {
	people domain.PersonRepository
}

// NewListPeople creates a new ListPeople use case.
func NewListPeople(people domain.PersonRepository) *ListPeople {
	return &ListPeople{people: people}
}

// Execute lists people.
func (uc *ListPeople) Execute(_ context.Context, _ ListPeopleInput) (*ListPeopleOutput, error) {
	people, err := uc.people.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return &ListPeopleOutput{People: people}, nil
}
