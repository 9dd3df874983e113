package main

import (
	"net/url"
	"time"

	"github.com/gorilla/schema"

	"github.com/pathviz/pathviz-server/internal/grid"
	"github.com/pathviz/pathviz-server/internal/repository"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGridDTO struct {
	Rows            int     `schema:"rows,required"`
	Cols            int     `schema:"cols,required"`
	Name            string  `schema:"name"`
	Maze            bool    `schema:"maze"`
	RandomEndpoints bool    `schema:"random_endpoints"`
	WeightFill      float64 `schema:"weight_fill"`
	Seed            *uint64 `schema:"seed"`
}

func decodeNewGrid(query url.Values) (NewGridDTO, error) {
	var dto NewGridDTO
	err := decoder.Decode(&dto, query)
	return dto, err
}

type MazeDTO struct {
	RandomEndpoints bool    `schema:"random_endpoints"`
	WeightFill      float64 `schema:"weight_fill"`
	Seed            *uint64 `schema:"seed"`
}

func decodeMaze(query url.Values) (MazeDTO, error) {
	var dto MazeDTO
	err := decoder.Decode(&dto, query)
	return dto, err
}

type SolveDTO struct {
	Algorithm string `schema:"algorithm,required"`
}

func decodeSolve(query url.Values) (SolveDTO, error) {
	var dto SolveDTO
	err := decoder.Decode(&dto, query)
	return dto, err
}

type GridLayoutDTO struct {
	Id        string      `json:"id"`
	Name      string      `json:"name"`
	Owned     bool        `json:"owned"`
	Grid      grid.Record `json:"grid"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewGridLayoutDTO(layout *repository.GridLayout) (GridLayoutDTO, error) {
	rec, err := layout.Record()
	if err != nil {
		return GridLayoutDTO{}, err
	}
	return GridLayoutDTO{
		Id:        layout.PublicId,
		Name:      layout.Name,
		Owned:     layout.UserId != nil,
		Grid:      rec,
		CreatedAt: layout.CreatedAt.Time,
		UpdatedAt: layout.UpdatedAt.Time,
	}, nil
}
