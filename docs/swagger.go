// Package docs Parking Microservice API.
//
// Микросервис для работы с данными о парковках Москвы из портала открытых данных.
// Предоставляет API для поиска парковок по координатам, названию и номеру (литере),
// а также синхронизацию локального хранилища с внешним источником.
//
// Основные возможности:
// - Поиск парковок в радиусе от точки с сортировкой по расстоянию
// - Текстовый поиск по русскому и английскому названию
// - Точный поиск по номеру парковки (литере)
// - Ручная и периодическая синхронизация с порталом открытых данных
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
