package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// orEmpty keeps empty lists encoding as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("invalid id: %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("invalid %s: %q", name, raw))
		return nil, false
	}
	return &id, true
}

// === Projects ===

func (s *Server) handleListProjects(c *gin.Context) {
	out, err := s.container.ListProjectsUseCase().Execute(c.Request.Context(), usecase.ListProjectsInput{})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out.Projects))
}

type createProjectRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	out, err := s.container.NewProjectUseCase().Execute(c.Request.Context(), usecase.NewProjectInput{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Project)
}

func (s *Server) handleShowProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := s.container.ShowProjectUseCase().Execute(c.Request.Context(), usecase.ShowProjectInput{ProjectID: id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Project)
}

type addMemberRequest struct {
	Person int `json:"person"`
}

func (s *Server) handleAddMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Person <= 0 {
		badRequest(c, "person is required")
		return
	}
	out, err := s.container.AddProjectMemberUseCase().Execute(c.Request.Context(), usecase.AddProjectMemberInput{
		ProjectID: id,
		PersonID:  req.Person,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Project)
}

func (s *Server) handleProjectTree(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := s.container.ShowProjectTreeUseCase().Execute(c.Request.Context(), usecase.ShowProjectTreeInput{ProjectID: id})
	if err != nil {
		fail(c, err)
		return
	}
	tree := out.Tree
	tree.Tasks = orEmpty(tree.Tasks)
	c.JSON(http.StatusOK, tree)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := s.container.DeleteProjectUseCase().Execute(c.Request.Context(), usecase.DeleteProjectInput{ProjectID: id}); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === People ===

func (s *Server) handleListPeople(c *gin.Context) {
	out, err := s.container.ListPeopleUseCase().Execute(c.Request.Context(), usecase.ListPeopleInput{})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out.People))
}

type createPersonRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Company  string `json:"company"`
}

func (s *Server) handleCreatePerson(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	out, err := s.container.NewPersonUseCase().Execute(c.Request.Context(), usecase.NewPersonInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Company:  req.Company,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Person)
}

// === Tasks ===

func (s *Server) handleListTasks(c *gin.Context) {
	projectID, ok := queryID(c, "project")
	if !ok {
		return
	}
	roots := false
	if raw := c.Query("roots"); raw != "" {
		var err error
		if roots, err = strconv.ParseBool(raw); err != nil {
			badRequest(c, fmt.Sprintf("invalid roots: %q", raw))
			return
		}
	}
	assignedTo, ok := queryID(c, "assigned_to")
	if !ok {
		return
	}
	out, err := s.container.ListTasksUseCase().Execute(c.Request.Context(), usecase.ListTasksInput{
		ProjectID:    projectID,
		AssignedTo:   assignedTo,
		NameContains: c.Query("search"),
		RootsOnly:    roots,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out.Tasks))
}

type createTaskRequest struct {
	Parent     *int        `json:"parent"`
	AssignedTo *int        `json:"assigned_to"`
	Name       string      `json:"name"`
	StartDate  domain.Date `json:"start_date"`
	Deadline   domain.Date `json:"deadline"`
	Project    int         `json:"project"`
	Priority   int         `json:"priority"`
	Progress   int         `json:"progress"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	out, err := s.container.NewTaskUseCase().Execute(c.Request.Context(), usecase.NewTaskInput{
		ProjectID:  req.Project,
		ParentID:   req.Parent,
		AssignedTo: req.AssignedTo,
		Name:       req.Name,
		StartDate:  req.StartDate,
		Deadline:   req.Deadline,
		Priority:   req.Priority,
		Progress:   req.Progress,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Task)
}

func (s *Server) handleShowTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := s.container.ShowTaskUseCase().Execute(c.Request.Context(), usecase.ShowTaskInput{TaskID: id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Detail)
}

// editInput decodes a PATCH body. Only present keys change; "parent": null
// makes the task a root and "assigned_to": null unassigns it.
func editInput(id int, body map[string]json.RawMessage) (usecase.EditTaskInput, error) {
	in := usecase.EditTaskInput{TaskID: id}
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		raw := body[k]
		isNull := string(raw) == "null"
		var err error
		switch k {
		case "name":
			in.Name = new(string)
			err = json.Unmarshal(raw, in.Name)
		case "start_date":
			in.StartDate = new(domain.Date)
			err = json.Unmarshal(raw, in.StartDate)
		case "deadline":
			in.Deadline = new(domain.Date)
			err = json.Unmarshal(raw, in.Deadline)
		case "priority":
			in.Priority = new(int)
			err = json.Unmarshal(raw, in.Priority)
		case "progress":
			in.Progress = new(int)
			err = json.Unmarshal(raw, in.Progress)
		case "parent":
			if isNull {
				in.MakeRoot = true
				continue
			}
			in.ParentID = new(int)
			err = json.Unmarshal(raw, in.ParentID)
		case "assigned_to":
			if isNull {
				in.Unassign = true
				continue
			}
			in.AssignedTo = new(int)
			err = json.Unmarshal(raw, in.AssignedTo)
		default:
			return in, fmt.Errorf("unknown field %q", k)
		}
		if err != nil {
			return in, fmt.Errorf("field %q: %w", k, err)
		}
	}
	return in, nil
}

func (s *Server) handleEditTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	in, err := editInput(id, body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	out, err := s.container.EditTaskUseCase().Execute(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := s.container.DeleteTaskUseCase().Execute(c.Request.Context(), usecase.DeleteTaskInput{TaskID: id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": out.Deleted})
}

func (s *Server) handleIndentedTasks(c *gin.Context) {
	projectID, ok := queryID(c, "project")
	if !ok {
		return
	}
	assignedTo, ok := queryID(c, "assigned_to")
	if !ok {
		return
	}
	out, err := s.container.IndentedTasksUseCase().Execute(c.Request.Context(), usecase.IndentedTasksInput{
		ProjectID:    projectID,
		AssignedTo:   assignedTo,
		NameContains: c.Query("search"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out.Entries))
}

func (s *Server) handleParentChoices(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := s.container.ParentChoicesUseCase().Execute(c.Request.Context(), usecase.ParentChoicesInput{TaskID: id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out.Choices))
}

func (s *Server) handlePicker(c *gin.Context) {
	exclude, ok := queryID(c, "exclude")
	if !ok {
		return
	}
	in := usecase.TaskPickerInput{}
	if exclude != nil {
		in.ExcludeTaskID = *exclude
	}
	out, err := s.container.TaskPickerUseCase().Execute(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	picker := out.Picker
	picker.Data = orEmpty(picker.Data)
	c.JSON(http.StatusOK, picker)
}
