package service

import (
	"net/http"

	"github.com/KOMKZ/go-yogan-content/errcode"
)

// 服务层错误码：72xxxx，读不到时由 HTTP 层返回
var (
	ErrFilmNotFound = errcode.Register(errcode.New(errcode.ModuleService, 1,
		"service", "error.film.not_found", "film not found", http.StatusNotFound))

	ErrGenreNotFound = errcode.Register(errcode.New(errcode.ModuleService, 2,
		"service", "error.genre.not_found", "genre not found", http.StatusNotFound))

	ErrPersonNotFound = errcode.Register(errcode.New(errcode.ModuleService, 3,
		"service", "error.person.not_found", "person not found", http.StatusNotFound))

	ErrFilmsNotFound = errcode.Register(errcode.New(errcode.ModuleService, 4,
		"service", "error.films.not_found", "films not found", http.StatusNotFound))

	ErrGenresNotFound = errcode.Register(errcode.New(errcode.ModuleService, 5,
		"service", "error.genres.not_found", "genres not found", http.StatusNotFound))

	ErrPersonsNotFound = errcode.Register(errcode.New(errcode.ModuleService, 6,
		"service", "error.persons.not_found", "persons not found", http.StatusNotFound))
)
