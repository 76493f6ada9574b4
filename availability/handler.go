package availability

import (
	"context"
	"net/http"
	"time"

	"riviera/db"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var estimator = NewEstimator()

// GetMonth serves the booking calendar for one month. Every call re-reads
// the month's reservations, so a package filter change on the client simply
// re-requests. Navigation outside the season window is clamped.
func GetMonth(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	year, month, err := ParseMonth(ps.ByName("year"), ps.ByName("month"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, month = estimator.ClampMonth(year, month)

	from, to := MonthRange(year, month)
	filter := bson.M{
		"date":   bson.M{"$gte": from, "$lte": to},
		"status": bson.M{"$in": []string{"pending", "confirmed"}},
	}
	if pkg := r.URL.Query().Get("package"); pkg != "" {
		filter["packageId"] = pkg
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.ReservationsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	defer cur.Close(ctx)

	bookedGuests := map[string]int{}
	for cur.Next(ctx) {
		var res struct {
			Date   string `bson:"date"`
			Guests int    `bson:"guests"`
		}
		if err := cur.Decode(&res); err != nil {
			continue
		}
		bookedGuests[res.Date] += res.Guests
	}

	days := estimator.MonthStatus(year, month, bookedGuests)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"year":  year,
		"month": int(month),
		"days":  days,
	})
}
