package customers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"riviera/db"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Customer is the email-keyed loyalty aggregate. Tier is derived from
// VisitCount, never stored authoritatively.
type Customer struct {
	Email         string  `json:"email" bson:"email"`
	Name          string  `json:"name,omitempty" bson:"name,omitempty"`
	VisitCount    int     `json:"visit_count" bson:"visit_count"`
	LoyaltyPoints int     `json:"loyalty_points" bson:"loyalty_points"`
	TotalSpent    float64 `json:"total_spent" bson:"total_spent"`
	Tier          string  `json:"tier" bson:"-"`
	LastVisit     int64   `json:"lastVisit,omitempty" bson:"lastVisit,omitempty"`
}

// RecordVisit upserts the aggregate when a reservation is confirmed.
// Best-effort: a failed loyalty update must not fail the confirmation.
func RecordVisit(ctx context.Context, email string, spent float64) {
	_, err := db.CustomersCollection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$inc": bson.M{
				"visit_count":    1,
				"loyalty_points": pointsPerVisit,
				"total_spent":    spent,
			},
			"$set": bson.M{"lastVisit": time.Now().Unix()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("customers: visit record failed for %s: %v", email, err)
	}
}

// ListCustomers serves the loyalty screen, highest spenders first.
func ListCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.CustomersCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"total_spent": -1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var customers []Customer
	if err := cur.All(ctx, &customers); err != nil {
		http.Error(w, "failed to decode customers", http.StatusInternalServerError)
		return
	}
	for i := range customers {
		customers[i].Tier = TierFor(customers[i].VisitCount)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"customers": customers})
}

// GetCustomer returns one aggregate by email.
func GetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var c Customer
	if err := db.CustomersCollection.FindOne(ctx, bson.M{"email": ps.ByName("email")}).Decode(&c); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	c.Tier = TierFor(c.VisitCount)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"customer": c})
}

// AdjustCustomer lets staff correct an aggregate (name, manual points).
func AdjustCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Name          *string `json:"name"`
		LoyaltyPoints *int    `json:"loyalty_points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.LoyaltyPoints != nil {
		set["loyalty_points"] = *input.LoyaltyPoints
	}
	if len(set) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.CustomersCollection.FindOneAndUpdate(ctx,
		bson.M{"email": ps.ByName("email")},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Customer
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	updated.Tier = TierFor(updated.VisitCount)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"customer": updated})
}
