package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vytor/dailydle/internal/catalog"
	"github.com/vytor/dailydle/internal/compare"
	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/errors"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/progress"
	"github.com/vytor/dailydle/internal/selection"
	"github.com/vytor/dailydle/internal/stats"
)

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 10

// GuessRequest names the guessed monster by id or by name. The id wins when
// both are set.
type GuessRequest struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// GameService handles the daily game for one player at a time
type GameService interface {
	State(ctx context.Context, player string) (*models.GameState, error)
	Guess(ctx context.Context, player string, req GuessRequest) (*models.GuessOutcome, error)
	RevealHint(ctx context.Context, player string, hint models.Hint) (*models.GameState, error)
	Search(ctx context.Context, player, query string, limit int) ([]models.Monster, error)
	Yesterday(ctx context.Context) (*models.Monster, error)
	Target(ctx context.Context, day daykey.Key) (models.Monster, error)
}

// GameConfig tunes a GameService.
type GameConfig struct {
	Lookback int
	Compare  compare.Func
}

type gameService struct {
	catalog  *catalog.Catalog
	days     *daykey.Resolver
	progress *progress.Store
	stats    *stats.Store
	targets  *TargetCache
	lookback int
	compare  compare.Func
	locks    playerLocks
}

// NewGameService creates a new GameService
func NewGameService(cat *catalog.Catalog, days *daykey.Resolver, progressStore *progress.Store, statsStore *stats.Store, targets *TargetCache, cfg GameConfig) GameService {
	if cfg.Compare == nil {
		cfg.Compare = compare.Monsters
	}
	if cfg.Lookback < 0 {
		cfg.Lookback = selection.DefaultLookback
	}
	return &gameService{
		catalog:  cat,
		days:     days,
		progress: progressStore,
		stats:    statsStore,
		targets:  targets,
		lookback: cfg.Lookback,
		compare:  cfg.Compare,
	}
}

// Target returns day's target as picked by the selector and records the pick
// so the next day can show it as yesterday's answer. A recorded entry never
// changes the result; it is only rewritten when it differs.
func (s *gameService) Target(ctx context.Context, day daykey.Key) (models.Monster, error) {
	log := logger.FromContext(ctx)

	m, err := selection.Select(s.catalog.All(), day, s.lookback)
	if err != nil {
		log.Error("failed to select target: day=%s: %v", day, err)
		return models.Monster{}, errors.NewInternalError(err)
	}

	if id, found, err := s.targets.Lookup(ctx, day); err == nil && found && id == m.ID {
		return m, nil
	}
	if err := s.targets.Record(ctx, day, m.ID); err != nil {
		log.Warn("failed to record target: %v", err)
	} else {
		log.Info("target recorded: day=%s, id=%d", day, m.ID)
	}
	return m, nil
}

// Yesterday returns the previous day's target: the recorded id when there
// is one, otherwise a fresh selection for that day.
func (s *gameService) Yesterday(ctx context.Context) (*models.Monster, error) {
	log := logger.FromContext(ctx)
	day := s.days.Yesterday()

	id, found, err := s.targets.Lookup(ctx, day)
	if err != nil {
		log.Warn("target cache unavailable for yesterday: %v", err)
	}
	if found {
		if m, ok := s.catalog.ByID(id); ok {
			return &m, nil
		}
	}

	m, err := selection.Select(s.catalog.All(), day, s.lookback)
	if err != nil {
		log.Error("failed to select yesterday's target: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &m, nil
}

func (s *gameService) State(ctx context.Context, player string) (*models.GameState, error) {
	log := logger.FromContext(ctx)
	log.Debug("building game state: player=%s", player)

	attempt := s.progress.Load(ctx, player)
	return s.buildState(ctx, player, attempt, progress.Recover(attempt, s.catalog))
}

func (s *gameService) Guess(ctx context.Context, player string, req GuessRequest) (*models.GuessOutcome, error) {
	log := logger.FromContext(ctx)

	guess, err := s.resolveGuess(req)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(player)
	defer unlock()

	attempt := s.progress.Load(ctx, player)
	guesses := progress.Recover(attempt, s.catalog)
	if attempt != nil && attempt.Won {
		return nil, errors.NewConflictError("today's monster has already been found")
	}
	for _, g := range guesses {
		if g.ID == guess.ID {
			return nil, errors.NewConflictError("monster already guessed: " + guess.Name)
		}
	}

	target, err := s.Target(ctx, s.days.Today())
	if err != nil {
		return nil, err
	}

	result := compare.Guess(s.compare, guess, target)
	guesses = append(guesses, guess)

	// Recover drops guesses the catalog no longer has; the win still counts them.
	guessCount := len(guesses)
	if attempt != nil {
		guessCount = max(guessCount, len(attempt.Guesses)+1)
	}

	var hint1, hint2 bool
	if attempt != nil {
		hint1, hint2 = attempt.Hint1Revealed, attempt.Hint2Revealed
	}
	saved, err := s.progress.Save(ctx, player, guesses, result.Correct, hint1, hint2)
	if err != nil {
		log.Error("failed to save progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("guess accepted: player=%s, monster=%d, correct=%t, count=%d", player, guess.ID, result.Correct, guessCount)

	if result.Correct {
		if _, err := s.stats.RecordWin(ctx, player, guessCount); err != nil {
			log.Error("failed to record win: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	state, err := s.buildState(ctx, player, &saved, guesses)
	if err != nil {
		return nil, err
	}
	return &models.GuessOutcome{Result: result, State: *state}, nil
}

func (s *gameService) resolveGuess(req GuessRequest) (models.Monster, error) {
	if req.ID != 0 {
		m, ok := s.catalog.ByID(req.ID)
		if !ok {
			return models.Monster{}, errors.NewNotFoundError("monster", req.ID)
		}
		return m, nil
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Monster{}, errors.NewValidationError("name", "cannot be empty")
	}
	m, ok := s.catalog.ByName(name)
	if !ok {
		return models.Monster{}, errors.NewNotFoundError("monster", name)
	}
	return m, nil
}

func (s *gameService) RevealHint(ctx context.Context, player string, hint models.Hint) (*models.GameState, error) {
	log := logger.FromContext(ctx)

	if !hint.Valid() {
		return nil, errors.NewBadRequestError("unknown hint")
	}

	unlock := s.locks.lock(player)
	defer unlock()

	attempt := s.progress.Load(ctx, player)
	guesses := progress.Recover(attempt, s.catalog)
	if attempt != nil && attempt.Won {
		return nil, errors.NewBadRequestError("hints are closed once the monster is found")
	}
	if len(guesses) < hint.Threshold() {
		return nil, errors.NewBadRequestError("hint is still locked")
	}

	hint1, hint2 := attempt.Hint1Revealed, attempt.Hint2Revealed
	switch hint {
	case models.HintImage:
		hint1 = true
	case models.HintEcosystem:
		hint2 = true
	}
	if hint1 == attempt.Hint1Revealed && hint2 == attempt.Hint2Revealed {
		return s.buildState(ctx, player, attempt, guesses)
	}

	saved, err := s.progress.Save(ctx, player, guesses, false, hint1, hint2)
	if err != nil {
		log.Error("failed to save progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("hint revealed: player=%s, hint=%d", player, hint)

	return s.buildState(ctx, player, &saved, guesses)
}

func (s *gameService) Search(ctx context.Context, player, query string, limit int) ([]models.Monster, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	exclude := map[int64]bool{}
	for _, g := range progress.Recover(s.progress.Load(ctx, player), s.catalog) {
		exclude[g.ID] = true
	}
	return s.catalog.Search(query, exclude, limit), nil
}

func (s *gameService) buildState(ctx context.Context, player string, attempt *models.DailyAttempt, guesses []models.Monster) (*models.GameState, error) {
	today := s.days.Today()
	target, err := s.Target(ctx, today)
	if err != nil {
		return nil, err
	}

	state := &models.GameState{
		Day:              today,
		Guesses:          make([]models.GuessResult, 0, len(guesses)),
		SecondsUntilNext: int64(s.days.UntilNextDay(s.days.Now()) / time.Second),
	}
	for _, g := range guesses {
		state.Guesses = append(state.Guesses, compare.Guess(s.compare, g, target))
	}

	var hint1, hint2 bool
	if attempt != nil {
		state.Won = attempt.Won
		hint1, hint2 = attempt.Hint1Revealed, attempt.Hint2Revealed
	}
	state.Hints = hintState(len(guesses), hint1, hint2, target)

	if state.Won {
		state.Target = &target
		state.Share = ShareText(target.Name, state.Guesses)
	}

	yesterday, err := s.Yesterday(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("yesterday's target unavailable: %v", err)
	} else {
		state.Yesterday = yesterday
	}

	state.Stats = stats.View(s.stats.Load(ctx, player))
	return state, nil
}

func hintState(guessCount int, imageRevealed, ecosystemRevealed bool, target models.Monster) models.HintState {
	h := models.HintState{
		ImageUnlocked:         guessCount >= models.HintImageThreshold,
		ImageRevealed:         imageRevealed,
		GuessesUntilImage:     max(0, models.HintImageThreshold-guessCount),
		EcosystemUnlocked:     guessCount >= models.HintEcosystemThreshold,
		EcosystemRevealed:     ecosystemRevealed,
		GuessesUntilEcosystem: max(0, models.HintEcosystemThreshold-guessCount),
	}
	if imageRevealed {
		h.Image = target.Image
		h.Used++
	}
	if ecosystemRevealed {
		h.Ecosystem = target.Ecosystem
		h.Used++
	}
	return h
}

// playerLocks serializes read-modify-write cycles on one player's records.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*playerLock
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

func (p *playerLocks) lock(player string) (unlock func()) {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*playerLock)
	}
	l, ok := p.locks[player]
	if !ok {
		l = &playerLock{}
		p.locks[player] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, player)
		}
		p.mu.Unlock()
	}
}
