package dto

// RegisterDTO is the payload for creating a new account.
type RegisterDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// QuestionCreateDTO is used within QuizCreateDTO for manual quiz authoring.
type QuestionCreateDTO struct {
	QuestionText  string   `json:"question_text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
}

// QuizCreateDTO is for admin to create a manual quiz with all its questions.
type QuizCreateDTO struct {
	Title      string              `json:"title" binding:"required"`
	Topic      string              `json:"topic" binding:"required"`
	Difficulty string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Questions  []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// QuizGenerateDTO requests an AI-generated quiz on a topic.
type QuizGenerateDTO struct {
	Title         string `json:"title"`
	Topic         string `json:"topic" binding:"required"`
	Difficulty    string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	QuestionCount int    `json:"question_count" binding:"omitempty,min=1,max=20"`
}

// QuizSubmitDTO carries a user's answers for a quiz, keyed by question ID.
type QuizSubmitDTO struct {
	Answers   map[uint]string `json:"answers" binding:"required"`
	TimeTaken int             `json:"time_taken" binding:"min=0"`
}

type QuizStatusUpdateDTO struct {
	Status string `json:"status" binding:"required,oneof=pending published rejected"`
}
