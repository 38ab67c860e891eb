package server

import "net/http"

// Routes registers the API surface on mux.
func (a *App) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/config", a.ConfigInfo)
	mux.HandleFunc("/api/teams", a.Teams)
	mux.HandleFunc("/api/stats", a.TelemetryStats)

	mux.HandleFunc("/api/player/state", a.PlayerState)
	mux.HandleFunc("/api/player/daily-bonus", a.DailyBonus)

	mux.HandleFunc("/api/shop/pack", a.BuyPack)
	mux.HandleFunc("/api/shop/redeem", a.Redeem)

	mux.HandleFunc("/api/album", a.AlbumState)
	mux.HandleFunc("/api/album/place", a.Place)
	mux.HandleFunc("/api/album/remove", a.Remove)
	mux.HandleFunc("/api/album/matching", a.Matching)
}

// GET /api/config
func (a *App) ConfigInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, a.Engine.Config)
}

// GET /api/teams
func (a *App) Teams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": a.Engine.Catalog.Teams})
}
