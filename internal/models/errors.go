package models

import "errors"

// Классификация ошибок пайплайна. Конкретные ошибки оборачивают эти
// сентинелы, наверху различаем через errors.Is.
var (
	// ErrAuth — обмен refresh token не удался либо брокер отверг bearer.
	ErrAuth = errors.New("auth failed")

	// ErrNoToken — для аккаунта ещё ни разу не кэшировали токен.
	ErrNoToken = errors.New("no cached token")

	// ErrFetch — выборка позиций упала не по причине авторизации.
	ErrFetch = errors.New("positions fetch failed")

	// ErrBusy — по аккаунту уже идёт пайплайн, второй не запускаем.
	ErrBusy = errors.New("account run already in progress")
)
