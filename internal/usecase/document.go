package usecase

import "github.com/runoshun/teamtasks/internal/domain"

// Document is the YAML interchange format for import and export.
//
//	people:
//	  - name: Ada
//	    email: ada@example.com
//	projects:
//	  - name: Website
//	    code: WEB
//	    members: [Ada]
//	    tasks:
//	      - name: Design
//	        priority: 1
//	        assignee: Ada
//	        subtasks:
//	          - name: Spec
type Document struct {
	People   []PersonDoc  `yaml:"people,omitempty"`
	Projects []ProjectDoc `yaml:"projects"`
}

// PersonDoc is a person in a Document.
type PersonDoc struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email,omitempty"`
	Position string `yaml:"position,omitempty"`
	Company  string `yaml:"company,omitempty"`
}

// ProjectDoc is a project with its task trees in a Document. Members
// refer to people by name, in joining order.
type ProjectDoc struct {
	Name    string    `yaml:"name"`
	Code    string    `yaml:"code"`
	Members []string  `yaml:"members,omitempty"`
	Tasks   []TaskDoc `yaml:"tasks,omitempty"`
}

// TaskDoc is a task with its subtasks in a Document. Assignee refers to a
// person by name.
// Fields are ordered to minimize memory padding.
type TaskDoc struct {
	Name      string      `yaml:"name"`
	Assignee  string      `yaml:"assignee,omitempty"`
	StartDate domain.Date `yaml:"start_date,omitempty"`
	Deadline  domain.Date `yaml:"deadline,omitempty"`
	Subtasks  []TaskDoc   `yaml:"subtasks,omitempty"`
	Priority  int         `yaml:"priority,omitempty"`
	Progress  int         `yaml:"progress,omitempty"`
}
