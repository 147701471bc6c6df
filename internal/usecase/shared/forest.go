package shared

import (
	"fmt"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// LoadForest lists the tasks matching filter and builds them into a forest.
// Anomalies found while building are logged as warnings under the
// "hierarchy" category and stay available on the returned forest.
func LoadForest(repo domain.TaskRepository, logger domain.Logger, filter domain.TaskFilter) (*hierarchy.Forest, error) {
	tasks, err := repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	forest, err := hierarchy.Build(tasks)
	if err != nil {
		if logger != nil {
			logger.Error(projectOf(filter), "hierarchy", err.Error())
		}
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}
	if logger != nil {
		for _, a := range forest.Anomalies {
			logger.Warn(a.ProjectID, "hierarchy", a.String())
		}
	}
	return forest, nil
}

// LoadProjectForest builds the forest of a single project.
func LoadProjectForest(repo domain.TaskRepository, logger domain.Logger, projectID int) (*hierarchy.Forest, error) {
	return LoadForest(repo, logger, domain.TaskFilter{ProjectID: &projectID})
}

func projectOf(filter domain.TaskFilter) int {
	if filter.ProjectID != nil {
		return *filter.ProjectID
	}
	return 0
}
