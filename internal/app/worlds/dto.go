package worlds

type CreateRequest struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}
