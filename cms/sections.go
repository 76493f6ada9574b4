package cms

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

const sectionsCacheKey = "public:sections"

// Section is one editable block of the public site (hero, about, gallery...).
type Section struct {
	ID        string   `json:"id" bson:"id"`
	Key       string   `json:"key" bson:"key"` // hero, about, contact...
	Title     string   `json:"title" bson:"title"`
	Body      string   `json:"body,omitempty" bson:"body,omitempty"`
	ImageURLs []string `json:"imageUrls,omitempty" bson:"imageUrls,omitempty"`
	Order     int      `json:"order" bson:"order"`
	Visible   bool     `json:"visible" bson:"visible"`
	UpdatedAt int64    `json:"updatedAt" bson:"updatedAt"`
}

// GetPublicSections serves visible blocks for the landing page, redis-cached.
func GetPublicSections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(sectionsCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.SectionsCollection.Find(ctx, bson.M{"visible": true},
		options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var sections []Section
	if err := cur.All(ctx, &sections); err != nil {
		http.Error(w, "failed to decode sections", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(utils.M{"sections": sections})
	_ = rdx.SetWithExpiry(sectionsCacheKey, string(payload), 10*time.Minute)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// ListSections serves the editor with every block, hidden ones included.
func ListSections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.SectionsCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var sections []Section
	if err := cur.All(ctx, &sections); err != nil {
		http.Error(w, "failed to decode sections", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"sections": sections})
}

func CreateSection(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var s Section
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if s.Key == "" || s.Title == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	s.ID = utils.GenerateRandomDigitString(12)
	s.Visible = true
	s.UpdatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.SectionsCollection.InsertOne(ctx, s); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	invalidateSections(r)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"section": s})
}

func UpdateSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var s Section
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.SectionsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"title":     s.Title,
			"body":      s.Body,
			"order":     s.Order,
			"updatedAt": time.Now().Unix(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Section
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidateSections(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"section": updated})
}

// ToggleVisibility shows or hides a block on the public site. Compare-and-set
// against the state read: a concurrent toggle gets a conflict, never a silent
// double-flip.
func ToggleVisibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s Section
	if err := db.SectionsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&s); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	res, err := db.SectionsCollection.UpdateOne(ctx,
		visibilityFilter(s.ID, s.Visible),
		bson.M{"$set": bson.M{"visible": !s.Visible, "updatedAt": time.Now().Unix()}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{"id": s.ID, "error": "state changed, retry"})
		return
	}

	invalidateSections(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"id": s.ID, "visible": !s.Visible})
}

// visibilityFilter pins the snapshot the flip was computed from.
func visibilityFilter(id string, visible bool) bson.M {
	return bson.M{"id": id, "visible": visible}
}

func DeleteSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.SectionsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidateSections(r)
	w.WriteHeader(http.StatusNoContent)
}

// UploadSectionImage appends a gallery photo to a block.
func UploadSectionImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	url, _, err := filemgr.SaveImageForm(r, "image", filemgr.FolderSections)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := db.SectionsCollection.UpdateOne(ctx,
		bson.M{"id": ps.ByName("id")},
		bson.M{"$push": bson.M{"imageUrls": url}, "$set": bson.M{"updatedAt": time.Now().Unix()}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	invalidateSections(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": url})
}

func invalidateSections(r *http.Request) {
	_, _ = rdx.RdxDel(sectionsCacheKey)
	mq.Emit(r.Context(), "content-updated", mq.Event{EntityType: "section"})
}
