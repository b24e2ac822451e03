package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adelacruz/timeplan/internal/clock"
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/repository"
)

// TaskServiceTestSuite exercises the filter engine and reconciliation over
// an in-memory SQLite database.
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	clock   clock.Fixed
	service *TaskService
	userID  uint64
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Priority{},
		&models.Task{},
		&models.RecurringTask{},
	)
	suite.Require().NoError(err)

	categories := []models.Category{
		{Name: models.CategoryOngoing},
		{Name: models.CategoryMissed},
		{Name: models.CategoryCompleted},
	}
	suite.Require().NoError(suite.db.Create(&categories).Error)

	priorities := []models.Priority{
		{Name: models.PriorityUrgent, Level: models.PriorityLevelUrgent},
		{Name: models.PriorityNotUrgent, Level: models.PriorityLevelNotUrgent},
	}
	suite.Require().NoError(suite.db.Create(&priorities).Error)

	user := models.User{Username: "tester", PasswordHash: "hash"}
	suite.Require().NoError(suite.db.Create(&user).Error)
	suite.userID = user.ID

	suite.clock = clock.Fixed{Date: dates.New(2025, time.June, 20)}
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewCategoryRepository(suite.db),
		repository.NewPriorityRepository(suite.db),
		suite.clock,
	)
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) categoryID(name string) uint64 {
	var category models.Category
	suite.Require().NoError(suite.db.Where("name = ?", name).First(&category).Error)
	return category.ID
}

func (suite *TaskServiceTestSuite) createTask(title string, due *dates.Date, categoryName, priorityName string) *models.Task {
	task := &models.Task{
		Title:      title,
		DueDate:    due,
		CategoryID: suite.categoryID(categoryName),
		UserID:     suite.userID,
	}
	if priorityName != "" {
		var priority models.Priority
		suite.Require().NoError(suite.db.Where("name = ?", priorityName).First(&priority).Error)
		task.PriorityID = &priority.ID
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskServiceTestSuite) titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func (suite *TaskServiceTestSuite) TestReconcileMovesPastDueToMissed() {
	suite.createTask("overdue", datePtr(2025, time.June, 18), models.CategoryOngoing, "")

	missed, err := suite.service.ListTasks(suite.userID, FilterMissed)
	suite.Require().NoError(err)
	suite.Equal([]string{"overdue"}, suite.titles(missed))

	ongoing, err := suite.service.ListTasks(suite.userID, FilterOngoing)
	suite.Require().NoError(err)
	suite.Empty(ongoing)
}

func (suite *TaskServiceTestSuite) TestReconcileIsIdempotent() {
	task := suite.createTask("overdue", datePtr(2025, time.June, 18), models.CategoryOngoing, "")

	suite.Require().NoError(suite.service.ReconcilePastDue())
	var first models.Task
	suite.Require().NoError(suite.db.First(&first, task.ID).Error)
	firstUpdated := first.UpdatedAt

	suite.Require().NoError(suite.service.ReconcilePastDue())
	var second models.Task
	suite.Require().NoError(suite.db.First(&second, task.ID).Error)

	suite.Equal(suite.categoryID(models.CategoryMissed), second.CategoryID)
	suite.Equal(firstUpdated, second.UpdatedAt)
}

func (suite *TaskServiceTestSuite) TestCompletedIsNeverReconciled() {
	task := suite.createTask("done long ago", datePtr(2024, time.January, 1), models.CategoryCompleted, "")

	suite.Require().NoError(suite.service.ReconcilePastDue())

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal(suite.categoryID(models.CategoryCompleted), reloaded.CategoryID)
}

func (suite *TaskServiceTestSuite) TestMissedIsNotRevertedPassively() {
	// Stored as Missed but due in the future: reconciliation leaves it.
	task := suite.createTask("future missed", datePtr(2025, time.June, 25), models.CategoryMissed, "")

	suite.Require().NoError(suite.service.ReconcilePastDue())

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	suite.Equal(suite.categoryID(models.CategoryMissed), reloaded.CategoryID)
}

func (suite *TaskServiceTestSuite) TestTodayFilter() {
	suite.createTask("due today", datePtr(2025, time.June, 20), models.CategoryOngoing, "")
	suite.createTask("due tomorrow", datePtr(2025, time.June, 21), models.CategoryOngoing, "")
	suite.createTask("no deadline", nil, models.CategoryOngoing, "")

	tasks, err := suite.service.ListTasks(suite.userID, FilterToday)
	suite.Require().NoError(err)
	suite.Equal([]string{"due today"}, suite.titles(tasks))
}

func (suite *TaskServiceTestSuite) TestNext7DaysFilterIsInclusive() {
	suite.createTask("today", datePtr(2025, time.June, 20), models.CategoryOngoing, "")
	suite.createTask("seventh day", datePtr(2025, time.June, 27), models.CategoryOngoing, "")
	suite.createTask("eighth day", datePtr(2025, time.June, 28), models.CategoryOngoing, "")
	suite.createTask("no deadline", nil, models.CategoryOngoing, "")

	tasks, err := suite.service.ListTasks(suite.userID, FilterNext7Days)
	suite.Require().NoError(err)
	suite.Equal([]string{"today", "seventh day"}, suite.titles(tasks))
}

func (suite *TaskServiceTestSuite) TestOngoingIncludesUndatedTasksLast() {
	suite.createTask("no deadline", nil, models.CategoryOngoing, "")
	suite.createTask("due later", datePtr(2025, time.July, 1), models.CategoryOngoing, "")

	tasks, err := suite.service.ListTasks(suite.userID, FilterOngoing)
	suite.Require().NoError(err)
	suite.Equal([]string{"due later", "no deadline"}, suite.titles(tasks))
}

func (suite *TaskServiceTestSuite) TestPriorityBreaksDueDateTies() {
	suite.createTask("relaxed", datePtr(2025, time.June, 22), models.CategoryOngoing, models.PriorityNotUrgent)
	suite.createTask("pressing", datePtr(2025, time.June, 22), models.CategoryOngoing, models.PriorityUrgent)

	tasks, err := suite.service.ListTasks(suite.userID, FilterOngoing)
	suite.Require().NoError(err)
	suite.Equal([]string{"pressing", "relaxed"}, suite.titles(tasks))
}

func (suite *TaskServiceTestSuite) TestCompletedAndMissedOrderDescending() {
	suite.createTask("older", datePtr(2025, time.May, 1), models.CategoryCompleted, "")
	suite.createTask("newer", datePtr(2025, time.June, 1), models.CategoryCompleted, "")

	tasks, err := suite.service.ListTasks(suite.userID, FilterCompleted)
	suite.Require().NoError(err)
	suite.Equal([]string{"newer", "older"}, suite.titles(tasks))
}

func (suite *TaskServiceTestSuite) TestFilterSubsetChain() {
	suite.createTask("today", datePtr(2025, time.June, 20), models.CategoryOngoing, "")
	suite.createTask("this week", datePtr(2025, time.June, 25), models.CategoryOngoing, "")
	suite.createTask("next month", datePtr(2025, time.July, 25), models.CategoryOngoing, "")
	suite.createTask("no deadline", nil, models.CategoryOngoing, "")
	suite.createTask("finished", datePtr(2025, time.June, 10), models.CategoryCompleted, "")
	suite.createTask("overdue", datePtr(2025, time.June, 1), models.CategoryOngoing, "")

	week, err := suite.service.ListTasks(suite.userID, FilterNext7Days)
	suite.Require().NoError(err)
	ongoing, err := suite.service.ListTasks(suite.userID, FilterOngoing)
	suite.Require().NoError(err)
	all, err := suite.service.ListTasks(suite.userID, FilterAllTasks)
	suite.Require().NoError(err)

	suite.Subset(suite.titles(ongoing), suite.titles(week))
	suite.Subset(suite.titles(all), suite.titles(ongoing))
	suite.Len(all, 6)
}

func (suite *TaskServiceTestSuite) TestUnknownFilterIsRejected() {
	_, err := suite.service.ListTasks(suite.userID, "Someday")
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("filter", verr.Field)
}

func (suite *TaskServiceTestSuite) TestMissingCategoryYieldsEmptyResult() {
	suite.Require().NoError(
		suite.db.Where("name = ?", models.CategoryCompleted).Delete(&models.Category{}).Error)

	tasks, err := suite.service.ListTasks(suite.userID, FilterCompleted)
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestCreateTaskRoundTrip() {
	due := datePtr(2025, time.June, 22)
	created, err := suite.service.CreateTask(CreateTaskInput{
		UserID:       suite.userID,
		Title:        "plan sprint",
		Description:  "outline the next two weeks",
		PriorityName: models.PriorityUrgent,
		DueDate:      due,
	})
	suite.Require().NoError(err)

	tasks, err := suite.service.ListTasks(suite.userID, FilterAllTasks)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)

	got := tasks[0]
	suite.Equal(created.ID, got.ID)
	suite.Equal("plan sprint", got.Title)
	suite.Equal("outline the next two weeks", got.Description)
	suite.Require().NotNil(got.DueDate)
	suite.True(got.DueDate.Equal(*due))
	suite.Equal(models.CategoryOngoing, got.Category.Name)
	suite.Require().NotNil(got.Priority)
	suite.Equal(models.PriorityUrgent, got.Priority.Name)
}

func (suite *TaskServiceTestSuite) TestCreateTaskNormalizesEmptyOptionals() {
	created, err := suite.service.CreateTask(CreateTaskInput{
		UserID: suite.userID,
		Title:  "bare minimum",
	})
	suite.Require().NoError(err)
	suite.Nil(created.DueDate)
	suite.Nil(created.PriorityID)
	suite.Equal("", created.Description)
	suite.Equal(models.CategoryOngoing, created.Category.Name)
}

func (suite *TaskServiceTestSuite) TestCreateTaskRequiresTitle() {
	_, err := suite.service.CreateTask(CreateTaskInput{UserID: suite.userID, Title: "   "})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("title", verr.Field)
}

func (suite *TaskServiceTestSuite) TestCreateTaskUnknownPriorityFallsBack() {
	created, err := suite.service.CreateTask(CreateTaskInput{
		UserID:       suite.userID,
		Title:        "odd priority",
		PriorityName: "Critical",
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(created.Priority)
	suite.Equal(models.PriorityNotUrgent, created.Priority.Name)
}

func (suite *TaskServiceTestSuite) TestUpdateEditPathRevertsMissed() {
	task := suite.createTask("was missed", datePtr(2025, time.June, 10), models.CategoryMissed, "")

	future := datePtr(2025, time.June, 25)
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{DueDate: future})
	suite.Require().NoError(err)
	suite.Equal(models.CategoryOngoing, updated.Category.Name)
}

func (suite *TaskServiceTestSuite) TestUpdateKeepsMissedWhenStillPastDue() {
	task := suite.createTask("still missed", datePtr(2025, time.June, 10), models.CategoryMissed, "")

	title := "renamed"
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Title: &title})
	suite.Require().NoError(err)
	suite.Equal(models.CategoryMissed, updated.Category.Name)
	suite.Equal("renamed", updated.Title)
}

func (suite *TaskServiceTestSuite) TestCompleteAndUncomplete() {
	task := suite.createTask("toggle me", datePtr(2025, time.June, 25), models.CategoryOngoing, "")

	completed, err := suite.service.CompleteTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.CategoryCompleted, completed.Category.Name)

	// Sticky: reconciliation does not touch it even once past due.
	suite.Require().NoError(suite.service.ReconcilePastDue())

	reverted, err := suite.service.UncompleteTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.CategoryOngoing, reverted.Category.Name)
}

func (suite *TaskServiceTestSuite) TestDeleteTask() {
	task := suite.createTask("short lived", nil, models.CategoryOngoing, "")

	suite.Require().NoError(suite.service.DeleteTask(task.ID))
	suite.ErrorIs(suite.service.DeleteTask(task.ID), ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestSearchTasks() {
	suite.createTask("buy groceries", nil, models.CategoryOngoing, "")
	suite.createTask("call dentist", nil, models.CategoryOngoing, "")
	task := &models.Task{
		Title:       "untitled errand",
		Description: "pick up groceries on the way home",
		CategoryID:  suite.categoryID(models.CategoryOngoing),
		UserID:      suite.userID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)

	tasks, err := suite.service.SearchTasks(suite.userID, "groceries")
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"buy groceries", "untitled errand"}, suite.titles(tasks))

	_, err = suite.service.SearchTasks(suite.userID, "   ")
	var verr *ValidationError
	suite.ErrorAs(err, &verr)
}

func (suite *TaskServiceTestSuite) TestTasksAreScopedToUser() {
	other := models.User{Username: "someone else", PasswordHash: "hash"}
	suite.Require().NoError(suite.db.Create(&other).Error)
	suite.Require().NoError(suite.db.Create(&models.Task{
		Title:      "not yours",
		CategoryID: suite.categoryID(models.CategoryOngoing),
		UserID:     other.ID,
	}).Error)

	tasks, err := suite.service.ListTasks(suite.userID, FilterAllTasks)
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestDropCorruptRows(t *testing.T) {
	zero := &dates.Date{}
	tasks := []models.Task{
		{ID: 1, Title: "good", DueDate: datePtr(2025, time.June, 20)},
		{ID: 2, Title: "corrupt", DueDate: zero},
		{ID: 3, Title: "undated"},
	}

	kept := dropCorruptRows(tasks)
	titles := make([]string, len(kept))
	for i, task := range kept {
		titles[i] = task.Title
	}
	assert.Equal(t, []string{"good", "undated"}, titles)
}
