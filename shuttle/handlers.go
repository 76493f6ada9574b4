package shuttle

import (
	"net/http"
	"time"

	"riviera/utils"

	"github.com/julienschmidt/httprouter"
)

var provider Provider = NewSimulator()

// GetSchedule serves today's timetable with the next-departure countdown.
// Manual refresh on the client is simply a re-request.
func GetSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	now := time.Now()
	schedule := provider.Schedule(now)

	resp := utils.M{"schedule": schedule, "capacity": Capacity}
	if sim, ok := provider.(*Simulator); ok {
		if next, countdown, found := sim.NextDeparture(now); found {
			resp["next"] = next
			resp["countdownSeconds"] = int(countdown.Seconds())
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetPosition serves the current simulated boat position.
func GetPosition(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, provider.Position(time.Now()))
}
