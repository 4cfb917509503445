package service

// AddBookRequest is the input a presentation layer validates before AddBook.
type AddBookRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Author string `json:"author" validate:"required,max=200"`
	ISBN   string `json:"isbn" validate:"required,max=32"`
}

// BorrowRequest is the input a presentation layer validates before BorrowBook.
type BorrowRequest struct {
	ISBN   string `json:"isbn" validate:"required"`
	UserID string `json:"user_id" validate:"required,numeric"`
	Name   string `json:"name" validate:"required,max=100"`
	Phone  string `json:"phone" validate:"required,len=11,numeric"`
}
