package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/customers"
	"riviera/db"
	"riviera/mq"
	"riviera/packages"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Time slots
const (
	SlotFullDay   = "full_day"
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

// Per-guest rates by time slot; the package base price is added on top.
// Advisory only, the final bill is settled on site.
var slotRates = map[string]float64{
	SlotFullDay:   60,
	SlotMorning:   35,
	SlotAfternoon: 35,
}

type Reservation struct {
	ID             string  `json:"id" bson:"id"`
	Name           string  `json:"name" bson:"name"`
	Email          string  `json:"email" bson:"email"`
	Phone          string  `json:"phone,omitempty" bson:"phone,omitempty"`
	Date           string  `json:"date" bson:"date"` // "YYYY-MM-DD"
	Slot           string  `json:"slot" bson:"slot"`
	Guests         int     `json:"guests" bson:"guests"`
	SpecialRequest string  `json:"specialRequest,omitempty" bson:"specialRequest,omitempty"`
	EstimatedPrice float64 `json:"estimatedPrice" bson:"estimatedPrice"`
	Status         string  `json:"status" bson:"status"`
	PackageID      string  `json:"packageId,omitempty" bson:"packageId,omitempty"`
	PassCode       string  `json:"-" bson:"passCode"`
	CreatedAt      int64   `json:"createdAt" bson:"createdAt"`
}

func genID() string {
	return utils.GenerateRandomDigitString(12)
}

// EstimatePrice computes the advisory price: per-guest slot rate plus the
// chosen package's base price.
func EstimatePrice(slot string, guests int, packageBase float64) float64 {
	return slotRates[slot]*float64(guests) + packageBase
}

// CreateReservation handles the public booking form.
func CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p Reservation
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if p.Name == "" || p.Email == "" || p.Date == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	if _, ok := slotRates[p.Slot]; !ok {
		http.Error(w, "invalid slot", http.StatusBadRequest)
		return
	}
	if p.Guests < 1 || p.Guests > 40 {
		http.Error(w, "invalid guest count", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var packageBase float64
	if p.PackageID != "" {
		var pkg packages.Package
		if err := db.PackagesCollection.FindOne(ctx, bson.M{"id": p.PackageID}).Decode(&pkg); err != nil {
			if err == mongo.ErrNoDocuments {
				http.Error(w, "package not found", http.StatusBadRequest)
				return
			}
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if pkg.MinGuests > 0 && p.Guests < pkg.MinGuests || pkg.MaxGuests > 0 && p.Guests > pkg.MaxGuests {
			http.Error(w, "guest count outside package capacity", http.StatusBadRequest)
			return
		}
		packageBase = pkg.BasePrice
	}

	p.ID = genID()
	p.Status = StatusPending
	p.EstimatedPrice = EstimatePrice(p.Slot, p.Guests, packageBase)
	p.PassCode = utils.GenerateRandomString(20)
	p.CreatedAt = time.Now().Unix()

	if _, err := db.ReservationsCollection.InsertOne(ctx, p); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, "reservation-created", mq.Event{EntityType: "reservation", EntityId: p.ID, Detail: p.Date})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "reservation": p})
}

// ListReservations serves the staff dashboard with optional filters.
func ListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter["date"] = date
	}
	if from := r.URL.Query().Get("from"); from != "" {
		cond := bson.M{"$gte": from}
		if to := r.URL.Query().Get("to"); to != "" {
			cond["$lte"] = to
		}
		filter["date"] = cond
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.ReservationsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var reservations []Reservation
	if err := cur.All(ctx, &reservations); err != nil {
		http.Error(w, "failed to decode reservations", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": reservations})
}

// GetReservation returns one reservation by id.
func GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var res Reservation
	if err := db.ReservationsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&res); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservation": res})
}

// UpdateStatus moves a reservation between pending, confirmed and declined.
// A confirmation records the visit on the guest's loyalty aggregate.
func UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if body.Status != StatusPending && body.Status != StatusConfirmed && body.Status != StatusDeclined {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.ReservationsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Reservation
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if body.Status == StatusConfirmed {
		customers.RecordVisit(ctx, updated.Email, updated.EstimatedPrice)
	}

	mq.Emit(ctx, "reservation-status-changed", mq.Event{EntityType: "reservation", EntityId: updated.ID, Detail: body.Status})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "reservation": updated})
}

// DeleteReservation removes a record entirely (admin cleanup).
func DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.ReservationsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
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
