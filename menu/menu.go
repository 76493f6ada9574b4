package menu

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

const cacheKey = "public:menu"

// Product is one menu item.
type Product struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Category    string  `json:"category" bson:"category"` // starters, mains, desserts, drinks
	ImageURL    string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Available   bool    `json:"available" bson:"available"`
	CreatedAt   int64   `json:"createdAt" bson:"createdAt"`
}

// GetMenu serves the public card: available items only, redis-cached.
func GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.MenuCollection.Find(ctx, bson.M{"available": true},
		options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var items []Product
	if err := cur.All(ctx, &items); err != nil {
		http.Error(w, "failed to decode menu", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(utils.M{"menu": items})
	_ = rdx.SetWithExpiry(cacheKey, string(payload), 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// ListProducts serves the admin screen with every item.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.MenuCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var items []Product
	if err := cur.All(ctx, &items); err != nil {
		http.Error(w, "failed to decode menu", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": items})
}

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if p.Name == "" || p.Category == "" || p.Price < 0 {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	p.ID = utils.GenerateRandomDigitString(12)
	p.Available = true
	p.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.MenuCollection.InsertOne(ctx, p); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"product": p})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.MenuCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"category":    p.Category,
			"imageUrl":    p.ImageURL,
			"available":   p.Available,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Product
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": updated})
}

// ToggleAvailability flips an item on or off the card. The update is a
// compare-and-set against the state read: a concurrent flip makes the filter
// miss, and the caller gets a conflict instead of a silent double-toggle.
func ToggleAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var item Product
	if err := db.MenuCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&item); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	res, err := db.MenuCollection.UpdateOne(ctx,
		toggleFilter(item.ID, item.Available),
		bson.M{"$set": bson.M{"available": !item.Available}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"id": item.ID, "error": "state changed, retry"})
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": item.ID, "available": !item.Available})
}

// toggleFilter pins the snapshot the flip was computed from.
func toggleFilter(id string, available bool) bson.M {
	return bson.M{"id": id, "available": available}
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.MenuCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
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

// UploadProductImage re-encodes and stores a dish photo.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	url, _, err := filemgr.SaveImageForm(r, "image", filemgr.FolderMenu)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.MenuCollection.UpdateOne(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{"imageUrl": url}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	invalidate(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": url})
}

func invalidate(r *http.Request) {
	_, _ = rdx.RdxDel(cacheKey)
	mq.Emit(r.Context(), "content-updated", mq.Event{EntityType: "menu"})
}
