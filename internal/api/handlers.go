package api

import (
	"github.com/vytor/dailydle/internal/repository"
	"github.com/vytor/dailydle/internal/services"
)

type Server struct {
	GameService  services.GameService
	StatsService services.StatsService
	Store        repository.KeyValueStore
	CookieSecure bool
}
