package spaceservice

// Space модель пространства из каталога
type Space struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от SpaceService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
