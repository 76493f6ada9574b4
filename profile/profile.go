package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"riviera/db"
	"riviera/filemgr"
	"riviera/globals"
	"riviera/mq"
	"riviera/rbac"
	"riviera/rdx"
	"riviera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Profile is the account record. The role attribute is assigned at
// registration and mutated only by administrative action.
type Profile struct {
	UserID        string    `json:"userid" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          rbac.Role `json:"role" bson:"role"`
	AvatarURL     string    `json:"avatarUrl,omitempty" bson:"avatar_url,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// GetProfile resolves the authenticated identity: profile plus the
// navigation and dashboard variant its role permits.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p Profile
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&p); err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"profile":    p,
		"navigation": rbac.NavigationFor(p.Role),
		"dashboard":  rbac.DashboardFor(p.Role),
	})
}

// EditProfile updates the caller's display name and avatar reference.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.AvatarURL != "" {
		set["avatar_url"] = input.AvatarURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated Profile
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	if input.Name != "" {
		if err := rdx.RdxSet("users:"+userID, input.Name); err != nil {
			log.Printf("Failed to refresh cached user name: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"profile": updated})
}

// UploadAvatar accepts a multipart image, re-encodes it and stores the URL.
func UploadAvatar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	url, id, err := filemgr.SaveImageForm(r, "avatar", filemgr.FolderAvatars)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar_url": url, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Failed to save avatar", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"avatarUrl": url, "id": id})
}

// AssignRole lets an administrator change an account's role.
func AssignRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("userid")

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !rbac.Valid(rbac.Role(input.Role)) {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{"role": input.Role, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	// Drop any cached session so the new role takes effect on next login.
	if _, err := rdx.RdxHdel("sessions", targetID); err != nil {
		log.Printf("Failed to drop session for %s: %v", targetID, err)
	}

	mq.Emit(r.Context(), "role-assigned", mq.Event{EntityType: "user", EntityId: targetID, Detail: input.Role})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// ListUsers returns all accounts, for the admin staff screen.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := db.UserCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var users []Profile
	if err := cur.All(ctx, &users); err != nil {
		http.Error(w, "Failed to decode users", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": users})
}
