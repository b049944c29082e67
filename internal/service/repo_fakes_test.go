package service

import (
	"time"

	"gorm.io/gorm"

	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	users     []*model.User
	nextID    uint
	createErr error

	activityRows []repository.UserActivityRow
	signups      []repository.SignupDay
	signupsSince time.Time
	listErr      error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) CountNewSince(role string, since time.Time) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == role && !u.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) SignupsPerDay(role string, since time.Time) ([]repository.SignupDay, error) {
	f.signupsSince = since
	return f.signups, nil
}

func (f *fakeUserRepo) ListWithActivity(role string) ([]repository.UserActivityRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.activityRows, nil
}

type fakeQuizRepo struct {
	quizzes   map[uint]*model.Quiz
	nextID    uint
	createErr error
	counts    repository.QuizCounts

	updatedID       uint
	updatedStatus   string
	updatedIsPublic bool
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uint]*model.Quiz), nextID: 1}
}

func (f *fakeQuizRepo) Create(quiz *model.Quiz) error {
	if f.createErr != nil {
		return f.createErr
	}
	quiz.ID = f.nextID
	f.nextID++
	for i := range quiz.Questions {
		quiz.Questions[i].ID = uint(i + 1)
		quiz.Questions[i].QuizID = quiz.ID
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (f *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	return f.FindByID(id)
}

func (f *fakeQuizRepo) FindPublished() ([]repository.QuizWithCreator, error) {
	return f.filter(func(q *model.Quiz) bool { return q.Status == model.QuizStatusPublished }), nil
}

func (f *fakeQuizRepo) FindByCreator(userID uint) ([]repository.QuizWithCreator, error) {
	return f.filter(func(q *model.Quiz) bool { return q.CreatedBy == userID }), nil
}

func (f *fakeQuizRepo) FindByStatus(status string) ([]repository.QuizWithCreator, error) {
	return f.filter(func(q *model.Quiz) bool { return q.Status == status }), nil
}

func (f *fakeQuizRepo) filter(keep func(*model.Quiz) bool) []repository.QuizWithCreator {
	var rows []repository.QuizWithCreator
	for _, q := range f.quizzes {
		if keep(q) {
			rows = append(rows, repository.QuizWithCreator{Quiz: *q})
		}
	}
	return rows
}

func (f *fakeQuizRepo) UpdateStatus(id uint, status string, isPublic bool) error {
	quiz, ok := f.quizzes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	quiz.Status = status
	quiz.IsPublic = isPublic
	f.updatedID = id
	f.updatedStatus = status
	f.updatedIsPublic = isPublic
	return nil
}

func (f *fakeQuizRepo) Delete(id uint) error {
	if _, ok := f.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) CountsBySourceAndStatus() (repository.QuizCounts, error) {
	return f.counts, nil
}

type fakeQuestionRepo struct {
	questions []model.Question
	findErr   error
}

func (f *fakeQuestionRepo) Create(question *model.Question) error {
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []model.Question
	for _, q := range f.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeResultRepo struct {
	results   []model.Result
	nextID    uint
	findErr   error
	createErr error

	attemptStats  repository.AttemptStats
	popularTopics []repository.TopicPopularity
	activityDays  []repository.ActivityDay
	activeUsers   int64
	topUsers      []repository.TopUserRow

	popularTopicsLimit int
	topUsersLimit      int
	activitySince      time.Time
	activeUsersSince   time.Time
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{nextID: 1}
}

func (f *fakeResultRepo) Create(result *model.Result) error {
	if f.createErr != nil {
		return f.createErr
	}
	result.ID = f.nextID
	f.nextID++
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) FindLatestByUserAndQuiz(userID, quizID uint) (*model.Result, error) {
	var latest *model.Result
	for i := range f.results {
		r := &f.results[i]
		if r.UserID != userID || r.QuizID != quizID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakeResultRepo) FindByUserWithQuiz(userID uint) ([]model.Result, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []model.Result
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) FindByUserWithQuizLimit(userID uint, limit int) ([]model.Result, error) {
	out, err := f.FindByUserWithQuiz(userID)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeResultRepo) AttemptStats() (repository.AttemptStats, error) {
	return f.attemptStats, nil
}

func (f *fakeResultRepo) PopularTopics(limit int) ([]repository.TopicPopularity, error) {
	f.popularTopicsLimit = limit
	return f.popularTopics, nil
}

func (f *fakeResultRepo) ActivityPerDaySince(since time.Time) ([]repository.ActivityDay, error) {
	f.activitySince = since
	return f.activityDays, nil
}

func (f *fakeResultRepo) CountActiveUsersSince(since time.Time) (int64, error) {
	f.activeUsersSince = since
	return f.activeUsers, nil
}

func (f *fakeResultRepo) TopUsers(limit int) ([]repository.TopUserRow, error) {
	f.topUsersLimit = limit
	return f.topUsers, nil
}

func (f *fakeResultRepo) RemoveDuplicates() (int64, error) {
	return 0, nil
}
