package dashboard

import (
	"context"
	"net/http"
	"time"

	"riviera/db"
	"riviera/globals"
	"riviera/rbac"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboard serves the role-branched landing payload. The variant decides
// which widget set the front end renders; counters are filled only for the
// variants that show them.
func GetDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	role, _ := r.Context().Value(globals.RoleKey).(string)
	variant := rbac.DashboardFor(rbac.Role(role))

	out := utils.M{
		"variant":    variant,
		"navigation": rbac.NavigationFor(rbac.Role(role)),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch variant {
	case rbac.DashClient:
		userID, _ := r.Context().Value(globals.UserIDKey).(string)
		out["upcoming"] = upcomingReservations(ctx, userID)
	case rbac.DashRestaurant:
		out["today"] = todayCounters(ctx)
		out["lowStock"] = lowStockCount(ctx)
	case rbac.DashManager, rbac.DashAnalytics:
		out["today"] = todayCounters(ctx)
		out["lowStock"] = lowStockCount(ctx)
		out["revenue"] = confirmedRevenue(ctx)
		out["customers"] = customerCount(ctx)
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}

// upcomingReservations counts the caller's future bookings. Reservations are
// keyed by the guest's email, not the account id, so the profile is resolved
// first.
func upcomingReservations(ctx context.Context, userID string) int64 {
	var u struct {
		Email string `bson:"email"`
	}
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&u); err != nil {
		return 0
	}

	n, err := db.ReservationsCollection.CountDocuments(ctx,
		upcomingFilter(u.Email, time.Now().Format("2006-01-02")))
	if err != nil {
		return 0
	}
	return n
}

func upcomingFilter(email, today string) bson.M {
	return bson.M{
		"email":  email,
		"date":   bson.M{"$gte": today},
		"status": bson.M{"$in": []string{"pending", "confirmed"}},
	}
}

func todayCounters(ctx context.Context) utils.M {
	today := time.Now().Format("2006-01-02")
	confirmed, _ := db.ReservationsCollection.CountDocuments(ctx, bson.M{
		"date": today, "status": "confirmed",
	})
	pending, _ := db.ReservationsCollection.CountDocuments(ctx, bson.M{
		"status": "pending",
	})
	return utils.M{"confirmed": confirmed, "pending": pending}
}

func lowStockCount(ctx context.Context) int64 {
	n, err := db.StockCollection.CountDocuments(ctx, bson.M{
		"$expr": bson.M{"$lte": bson.A{"$quantity", "$threshold"}},
	})
	if err != nil {
		return 0
	}
	return n
}

// confirmedRevenue sums estimated prices of this month's confirmed bookings.
func confirmedRevenue(ctx context.Context) float64 {
	monthPrefix := time.Now().Format("2006-01")
	cur, err := db.ReservationsCollection.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{
			"status": "confirmed",
			"date":   bson.M{"$regex": "^" + monthPrefix},
		}},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$estimatedPrice"},
		}},
	})
	if err != nil {
		return 0
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil || len(rows) == 0 {
		return 0
	}
	return rows[0].Total
}

func customerCount(ctx context.Context) int64 {
	n, err := db.CustomersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0
	}
	return n
}
