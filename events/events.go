package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"riviera/db"
	"riviera/filemgr"
	"riviera/mq"
	"riviera/rdx"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheKey = "public:events"

// Event is a club happening: beach party, live set, tasting night.
type Event struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Date        string `json:"date" bson:"date"` // YYYY-MM-DD
	StartTime   string `json:"startTime,omitempty" bson:"startTime,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Published   bool   `json:"published" bson:"published"`
	CreatedAt   int64  `json:"createdAt" bson:"createdAt"`
}

// GetUpcoming serves the public agenda: published events, today onward,
// redis-cached until the next mutation.
func GetUpcoming(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	cur, err := db.EventsCollection.Find(ctx,
		bson.M{"published": true, "date": bson.M{"$gte": today}},
		options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		http.Error(w, "failed to decode events", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(utils.M{"events": events})
	_ = rdx.SetWithExpiry(cacheKey, string(payload), 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// ListEvents serves the admin screen with drafts included.
func ListEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.EventsCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		http.Error(w, "failed to decode events", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"events": events})
}

func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var e Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if e.Title == "" || e.Date == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	e.ID = utils.GenerateRandomDigitString(12)
	e.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.EventsCollection.InsertOne(ctx, e); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"event": e})
}

func UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var e Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if e.Date != "" {
		if _, err := time.Parse("2006-01-02", e.Date); err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.EventsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"title":       e.Title,
			"description": e.Description,
			"date":        e.Date,
			"startTime":   e.StartTime,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Event
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"event": updated})
}

// TogglePublish flips an event between draft and the public agenda, as a
// compare-and-set so concurrent toggles cannot double-flip.
func TogglePublish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var e Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&e); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	res, err := db.EventsCollection.UpdateOne(ctx,
		publishFilter(e.ID, e.Published),
		bson.M{"$set": bson.M{"published": !e.Published}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"id": e.ID, "error": "state changed, retry"})
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": e.ID, "published": !e.Published})
}

// publishFilter pins the snapshot the flip was computed from.
func publishFilter(id string, published bool) bson.M {
	return bson.M{"id": id, "published": published}
}

func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.EventsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// UploadEventImage stores the poster photo.
func UploadEventImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	url, _, err := filemgr.SaveImageForm(r, "image", filemgr.FolderEvents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{"imageUrl": url}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": url})
}

func invalidate(r *http.Request) {
	_, _ = rdx.RdxDel(cacheKey)
	mq.Emit(r.Context(), "content-updated", mq.Event{EntityType: "event"})
}
