package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/halverson/puckcast/internal/cache"
	"github.com/halverson/puckcast/internal/copilot"
	"github.com/halverson/puckcast/internal/ingest/nhl"
	"github.com/halverson/puckcast/internal/predict"
	"github.com/halverson/puckcast/internal/rag"
	"github.com/halverson/puckcast/internal/scheduler"
	"github.com/halverson/puckcast/internal/season"
	"github.com/halverson/puckcast/internal/store"
	"github.com/halverson/puckcast/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	deps      Deps
	players   *repository.PlayerRepository
	stats     *repository.StatRepository
	games     *repository.GameRepository
	logs      *repository.GameLogRepository
	injuries  *repository.InjuryRepository
	documents *repository.DocumentRepository
	nhl       *nhl.Ingester
	logger    *log.Logger
}

// NewHandler creates a new handler
func NewHandler(deps Deps) *Handler {
	return &Handler{
		deps:      deps,
		players:   repository.NewPlayerRepository(deps.DB),
		stats:     repository.NewStatRepository(deps.DB),
		games:     repository.NewGameRepository(deps.DB),
		logs:      repository.NewGameLogRepository(deps.DB),
		injuries:  repository.NewInjuryRepository(deps.DB),
		documents: repository.NewDocumentRepository(deps.DB),
		nhl:       nhl.NewIngester(nhl.NewClient(), deps.DB),
		logger:    log.WithPrefix("api"),
	}
}

// HealthCheck reports service and dependency health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{}

	if err := h.deps.DB.DB().PingContext(r.Context()); err != nil {
		status = "unhealthy"
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
	}

	if h.deps.Cache != nil {
		if err := h.deps.Cache.HealthCheck(r.Context()); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]any{
		"status":  status,
		"service": "puckcast",
		"checks":  checks,
	})
}

// Query answers a free-form hockey question
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Question) == "" {
		respondError(w, http.StatusBadRequest, "Missing question", err)
		return
	}

	answer, err := h.deps.Copilot.Answer(r.Context(), body.Question)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to answer question", err)
		return
	}

	respondJSON(w, http.StatusOK, answer)
}

// GetPlayer returns a player profile: season stats, recent games, injury
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	player, err := h.players.GetByName(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	stats, err := h.stats.GetAllForPlayer(r.Context(), player.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player stats", err)
		return
	}

	recent, err := h.logs.RecentForPlayer(r.Context(), player.ID, 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game logs", err)
		return
	}

	injury, _ := h.injuries.ActiveForPlayer(r.Context(), player.ID)

	respondJSON(w, http.StatusOK, map[string]any{
		"player":       player,
		"season_stats": stats,
		"recent_games": recent,
		"injury":       injury,
	})
}

// GetLeaders returns league leaders for a stat
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	stat := mux.Vars(r)["stat"]
	if !repository.ValidStat(stat) {
		respondError(w, http.StatusBadRequest,
			"Invalid stat (valid: goals, assists, points, xg, corsi_for_pct)", nil)
		return
	}

	seasonParam := r.URL.Query().Get("season")
	if len(seasonParam) == 4 {
		if year, err := strconv.Atoi(seasonParam); err == nil {
			seasonParam = season.Encode(year)
		}
	}

	limit := 10
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	leaders, err := h.stats.LeagueLeaders(r.Context(), stat, seasonParam, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaders", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"stat":    stat,
		"leaders": leaders,
		"count":   len(leaders),
	})
}

// GetInjuries returns active injuries, optionally for one team
func (h *Handler) GetInjuries(w http.ResponseWriter, r *http.Request) {
	team := strings.ToUpper(r.URL.Query().Get("team"))

	injuries, err := h.injuries.GetActive(r.Context(), team)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch injuries", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"injuries": injuries,
		"count":    len(injuries),
	})
}

// GetTodaysGames returns today's schedule, briefly cached
func (h *Handler) GetTodaysGames(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")
	cacheKey := "games:today:" + today

	if h.deps.Cache != nil {
		var cached map[string]any
		if hit, err := h.deps.Cache.GetJSON(r.Context(), cacheKey, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	date, _ := time.Parse("2006-01-02", today)
	games, err := h.games.GetByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch today's games", err)
		return
	}
	if games == nil {
		games = []*store.Game{}
	}

	response := map[string]any{
		"date":  today,
		"games": games,
		"count": len(games),
	}
	if h.deps.Cache != nil {
		h.deps.Cache.SetJSON(r.Context(), cacheKey, response, cache.TodayGamesTTL)
	}

	respondJSON(w, http.StatusOK, response)
}

// RefreshGames re-pulls today's schedule and live scores
func (h *Handler) RefreshGames(w http.ResponseWriter, r *http.Request) {
	today := time.Now()

	scheduled, err := h.nhl.IngestScheduleDate(r.Context(), today)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to refresh schedule", err)
		return
	}

	refreshed, err := h.nhl.RefreshScores(r.Context(), today)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to refresh scores", err)
		return
	}

	if h.deps.Cache != nil {
		h.deps.Cache.Delete(r.Context(), "games:today:"+today.Format("2006-01-02"))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"scheduled": scheduled,
		"refreshed": refreshed,
	})
}

// GetMatchupPrediction predicts the top players on both sides of a game
func (h *Handler) GetMatchupPrediction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	home := strings.ToUpper(vars["home"])
	away := strings.ToUpper(vars["away"])

	gameDate := time.Now()
	if dateStr := r.URL.Query().Get("game_date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		gameDate = parsed
	}

	topN := 10
	if n, err := strconv.Atoi(r.URL.Query().Get("top_n")); err == nil && n > 0 && n <= 20 {
		topN = n
	}

	cacheKey := fmt.Sprintf("matchup:%s:%s:%s:%d", home, away, gameDate.Format("2006-01-02"), topN)
	if h.deps.Cache != nil {
		var cached predict.MatchupPrediction
		if hit, err := h.deps.Cache.GetJSON(r.Context(), cacheKey, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	prediction, err := h.deps.Engine.PredictMatchup(r.Context(), home, away, gameDate, topN)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to predict matchup", err)
		return
	}

	if h.deps.Cache != nil {
		h.deps.Cache.SetJSON(r.Context(), cacheKey, prediction, cache.MatchupTTL)
	}

	respondJSON(w, http.StatusOK, prediction)
}

// GetPlayerPrediction predicts one player's line against an opponent
func (h *Handler) GetPlayerPrediction(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	opponent := strings.ToUpper(r.URL.Query().Get("opponent"))
	isHome := r.URL.Query().Get("is_home") == "true"

	gameDate := time.Now()
	if dateStr := r.URL.Query().Get("game_date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		gameDate = parsed
	}

	prediction, err := h.deps.Engine.PredictPlayerByName(r.Context(), name, opponent, isHome, gameDate)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// GetTonightPredictions predicts every game on today's schedule
func (h *Handler) GetTonightPredictions(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	games, err := h.games.GetByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch today's games", err)
		return
	}

	if len(games) == 0 {
		respondJSON(w, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("No games scheduled for %s.", copilot.DisplayDate(date)),
			"games":   []any{},
		})
		return
	}

	predictions := make([]*predict.MatchupPrediction, 0, len(games))
	for _, game := range games {
		mp, err := h.deps.Engine.PredictMatchup(r.Context(), game.HomeAbbrev, game.AwayAbbrev, game.GameDate, 3)
		if err != nil {
			h.logger.Warn("matchup prediction failed",
				"home", game.HomeAbbrev, "away", game.AwayAbbrev, "error", err)
			continue
		}
		predictions = append(predictions, mp)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"date":  date.Format("2006-01-02"),
		"games": predictions,
		"count": len(predictions),
	})
}

// GetMatchupContext returns the pace and goalie inputs for a matchup
func (h *Handler) GetMatchupContext(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	home := strings.ToUpper(vars["home"])
	away := strings.ToUpper(vars["away"])

	seasonCode, err := h.stats.MostRecentSeason(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "No season data available", err)
		return
	}

	mc := h.deps.Engine.BuildMatchupContext(r.Context(), home, away, seasonCode)
	respondJSON(w, http.StatusOK, mc)
}

// GetDataStatus reports row counts, checkpoints and pending seasons
func (h *Handler) GetDataStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts := map[string]any{}

	if n, err := h.players.Count(ctx); err == nil {
		counts["players"] = n
	}
	if n, err := h.stats.Count(ctx); err == nil {
		counts["season_stats"] = n
	}
	if n, err := h.games.Count(ctx); err == nil {
		counts["games"] = n
	}
	if n, err := h.logs.Count(ctx); err == nil {
		counts["game_logs"] = n
	}
	if n, err := h.injuries.CountActive(ctx); err == nil {
		counts["active_injuries"] = n
	}
	if n, err := h.documents.Count(ctx); err == nil {
		counts["documents"] = n
	}

	rec := h.deps.Ledger.Load()
	pending := season.Pending(season.FirstCSVSeason, season.CurrentStartYear(time.Now()), rec.CompletedSeasons)

	respondJSON(w, http.StatusOK, map[string]any{
		"counts":          counts,
		"progress":        rec,
		"pending_seasons": pending,
		"updating":        h.deps.Orchestrator.Running(),
	})
}

// RunUpdates triggers the startup update job in the background
func (h *Handler) RunUpdates(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, "startup_updates", h.deps.Orchestrator.RunStartupUpdates)
}

// RunDailyUpdate triggers the full daily refresh in the background
func (h *Handler) RunDailyUpdate(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, "daily_update", h.deps.Orchestrator.RunDailyUpdate)
}

// RunSalaryUpdate triggers the cap-hit scrape in the background
func (h *Handler) RunSalaryUpdate(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, "salary_update", h.deps.Orchestrator.RunSalaryUpdate)
}

type jobFunc func(ctx context.Context) (map[string]any, error)

func (h *Handler) triggerJob(w http.ResponseWriter, name string, run jobFunc) {
	if h.deps.Orchestrator.Running() {
		respondJSON(w, http.StatusConflict, map[string]any{"status": "already_running"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()
		if _, err := run(ctx); err != nil && err != scheduler.ErrAlreadyRunning {
			h.logger.Error("background job failed", "job", name, "error", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]any{
		"status": "started",
		"job":    name,
	})
}

// AddDocument indexes an article into the vector store
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	if h.deps.RAG == nil || !h.deps.RAG.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Document indexing is disabled", nil)
		return
	}

	var body struct {
		Title    string          `json:"title"`
		Content  string          `json:"content"`
		Source   string          `json:"source"`
		URL      string          `json:"url"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Content) == "" {
		respondError(w, http.StatusBadRequest, "Missing document content", err)
		return
	}

	chunks, err := h.deps.RAG.AddDocument(r.Context(), body.Title, body.Content, body.Source, body.URL, body.Metadata)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to index document", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"title":  body.Title,
		"chunks": chunks,
	})
}

// SearchDocuments returns chunks similar to the query
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	if h.deps.RAG == nil || !h.deps.RAG.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Document search is disabled", nil)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	limit := 5
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 20 {
		limit = l
	}

	docs, err := h.deps.RAG.Search(r.Context(), query, limit, rag.DefaultMinSimilarity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Search failed", err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": docs,
		"count":   len(docs),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]any{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
