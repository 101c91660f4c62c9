package models

// ErrorResponse представляет ошибку API
type ErrorResponse struct {
	Message string `json:"message"`
	// Fields перечисляет незаполненные поля при ошибке валидации
	Fields []string `json:"fields,omitempty"`
}

// Варианты оформления всплывающих уведомлений
const (
	ToastDefault     = "default"
	ToastDestructive = "destructive"
)

// Toast - событие, которое вернула мутация. Показывать его или нет, решает клиент.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"`
}
