package category

type CategoryResponse struct {
	Name   string `json:"name"`
	Preset bool   `json:"preset"`
}

type CategoriesResponse struct {
	Kind       string             `json:"type"`
	Categories []CategoryResponse `json:"categories"`
}
