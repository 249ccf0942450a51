package ui

import (
	"folioadmin/internal/domain"
)

// pageLoadedMsg carries the result of (re)loading the photos page
type pageLoadedMsg struct {
	page *domain.Page
	err  error
}
