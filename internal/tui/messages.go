package tui

import (
	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/draw"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/index"
	"github.com/Coeai-9487/kidney-meals-lottery/internal/loader"
)

type catalogLoadedMsg struct {
	result loader.Result
}

type catalogErrMsg struct {
	err error
}

type menuLoadedMsg struct {
	category catalog.Category
	meals    []index.Meal
}

type menuErrMsg struct {
	err error
}

// drawTickMsg advances the "drawing..." dots for a pending draw.
type drawTickMsg struct {
	token draw.Token
}

// drawRevealMsg ends a pending draw and shows its result.
type drawRevealMsg struct {
	token draw.Token
}

type openErrMsg struct {
	err error
}
