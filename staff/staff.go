package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/db"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Employee is a staff roster record.
type Employee struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Position  string `json:"position" bson:"position"` // waiter, cook, lifeguard...
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Shift     string `json:"shift,omitempty" bson:"shift,omitempty"`
	Active    bool   `json:"active" bson:"active"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

func ListStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.StaffCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var employees []Employee
	if err := cur.All(ctx, &employees); err != nil {
		http.Error(w, "failed to decode staff", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"staff": employees})
}

func CreateEmployee(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var e Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if e.Name == "" || e.Position == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	e.ID = utils.GenerateRandomDigitString(12)
	e.Active = true
	e.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.StaffCollection.InsertOne(ctx, e); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"employee": e})
}

func UpdateEmployee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var e Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.StaffCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"name":     e.Name,
			"position": e.Position,
			"email":    e.Email,
			"phone":    e.Phone,
			"shift":    e.Shift,
			"active":   e.Active,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Employee
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"employee": updated})
}

// ToggleActive flips an employee in or out of the active roster, as a
// compare-and-set so concurrent toggles cannot double-flip.
func ToggleActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var e Employee
	if err := db.StaffCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&e); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	res, err := db.StaffCollection.UpdateOne(ctx,
		activeFilter(e.ID, e.Active),
		bson.M{"$set": bson.M{"active": !e.Active}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"id": e.ID, "error": "state changed, retry"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": e.ID, "active": !e.Active})
}

// activeFilter pins the snapshot the flip was computed from.
func activeFilter(id string, active bool) bson.M {
	return bson.M{"id": id, "active": active}
}

func DeleteEmployee(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.StaffCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
