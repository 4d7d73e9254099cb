package main

import "net/http"

// postCategories is the single source of truth for the category set.
// Create-post validation and GET /api/categories both read it.
var postCategories = []string{
	"Technology",
	"Programming",
	"Web Development",
	"Mobile Development",
	"Artificial Intelligence",
	"Machine Learning",
	"Data Science",
	"DevOps",
	"Cloud Computing",
	"Cybersecurity",
	"Blockchain",
	"UI/UX Design",
	"Product Management",
	"Business",
	"Career",
	"Personal Development",
	"Lifestyle",
	"Travel",
	"Food",
	"Other",
}

func isValidCategory(c string) bool {
	for _, v := range postCategories {
		if v == c {
			return true
		}
	}
	return false
}

// GET /api/categories
func handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, postCategories)
}
