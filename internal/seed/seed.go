// Package seed populates an empty store with the development fixture graph:
// a handful of accounts, their friendships, message history, content and a
// running streak, so every read path has data on first boot.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmarini-dev/lumina/backend/internal/models"
	"github.com/dmarini-dev/lumina/backend/internal/repositories"
	"github.com/dmarini-dev/lumina/backend/internal/util"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	username string
	password string
	name     string
}

var seedUsers = []seedUser{
	{"devuser", "devpassword", "Dev_User"},
	{"cyber_anna", "password1", "Anna_X"},
	{"digital_marco", "password2", "Marco_Z"},
	{"quantum_elena", "password3", "Elena_K"},
	{"code_luca", "password4", "Luca_G"},
}

func newID() string {
	return uuid.NewString()
}

// Run populates fixtures when no users exist yet. An already-populated
// store is left untouched.
func Run(ctx context.Context, pgdb *gorm.DB, mgdb *mongo.Database, clock util.Clock) error {
	userRepo := repositories.NewPostgresUserRepository(pgdb)

	count, err := userRepo.CountUsers()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		log.Println("Database already populated, skipping seed.")
		return nil
	}
	log.Println("Initializing database with seed users and sample data...")

	users := make([]*models.User, len(seedUsers))
	for i, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		users[i] = &models.User{
			Username: su.username,
			Password: string(hash),
			Name:     su.name,
			Avatar:   models.RandomPicsumURL(100, 100),
		}
		if err := userRepo.CreateUser(users[i]); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", su.username, err)
		}
	}
	dev, anna, marco, elena, luca := users[0], users[1], users[2], users[3], users[4]

	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	for _, friend := range []*models.User{anna, marco} {
		if err := friendshipRepo.CreateFriendship(&models.Friendship{User1ID: dev.ID, User2ID: friend.ID}); err != nil {
			return fmt.Errorf("failed to create seed friendship: %w", err)
		}
	}

	now := clock.Now().UnixMilli()

	messageRepo := repositories.NewMongoMessageRepository(mgdb)
	messages := []*models.Message{
		{ConversationID: anna.ID, SenderID: dev.ID, Content: "Cybernetic greetings, Anna. System status: optimal. 🚀", Timestamp: now - time.Hour.Milliseconds(), ReadStatus: models.MessageRead},
		{ConversationID: anna.ID, SenderID: anna.ID, Content: "Processor online, Dev_User! Initiating data transfer sequence. 💾", Timestamp: now - 3500000, ReadStatus: models.MessageRead},
		{ConversationID: marco.ID, SenderID: dev.ID, Content: "Protocol Marco, any new digital artifacts found? 🖼️", Timestamp: now - 2*time.Hour.Milliseconds(), ReadStatus: models.MessageRead},
		{ConversationID: marco.ID, SenderID: marco.ID, Content: "Affirmative! Accessing recent network captures. Ready for sync. ✨", Timestamp: now - 7100000, ReadStatus: models.MessageRead},
		{ConversationID: elena.ID, SenderID: elena.ID, Content: "Quantum_Elena online. New data stream detected. Analysis complete. 📊", Timestamp: now - time.Minute.Milliseconds(), ReadStatus: models.MessageUnread},
	}
	for _, m := range messages {
		if err := messageRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create seed message: %w", err)
		}
	}

	contentRepo := repositories.NewMongoContentRepository(mgdb)

	day := (24 * time.Hour).Milliseconds()
	stories := []*models.ContentItem{
		{UserID: anna.ID, MediaPath: models.RandomPicsumURL(600, 1000), MediaType: "image", Timestamp: now - 10000, ExpiryTime: now + 23*time.Hour.Milliseconds(), ViewsCount: 15},
		{UserID: marco.ID, MediaPath: models.RandomPicsumURL(600, 1000), MediaType: "image", Timestamp: now - 20000, ExpiryTime: now + 22*time.Hour.Milliseconds(), ViewsCount: 20},
		{UserID: elena.ID, MediaPath: "/uploads/sample_video_1.mp4", MediaType: "video", Timestamp: now - 15000, ExpiryTime: now + 22*time.Hour.Milliseconds(), ViewsCount: 10},
		{UserID: dev.ID, MediaPath: models.RandomPicsumURL(600, 1000), MediaType: "image", Timestamp: now - 2000, ExpiryTime: now + 23*time.Hour.Milliseconds()},
	}
	for _, s := range stories {
		if err := contentRepo.Create(ctx, models.ContentTypeStory, s); err != nil {
			return fmt.Errorf("failed to create seed story: %w", err)
		}
	}

	devPost := &models.ContentItem{
		UserID:    dev.ID,
		MediaPath: models.RandomPicsumURL(600, 400),
		Caption:   "System online. Initializing social protocol. Hello, digital realm. ✨",
		MediaType: "image",
		Timestamp: now,
	}
	posts := []*models.ContentItem{
		{UserID: anna.ID, MediaPath: models.RandomPicsumURL(600, 400), Caption: "Synthesized landscapes. Data visualization complete. #DigitalArt #FutureScape", MediaType: "image", Timestamp: now - 5*day,
			Comments: []models.Comment{{ID: newID(), UserID: dev.ID, Content: "Amazing capture!", Timestamp: now - 4*day}}},
		{UserID: marco.ID, MediaPath: "/uploads/sample_video_2.mp4", Caption: "New code compiled. Executing test sequence. Bug analysis ongoing. #CodingLife #BinaryFlow", MediaType: "video", Timestamp: now - 2*day},
		{UserID: elena.ID, MediaPath: models.RandomPicsumURL(600, 400), Caption: "Neural network optimizations. Achieving peak performance. #AI #MachineLearning", MediaType: "image", Timestamp: now - day,
			Comments: []models.Comment{{ID: newID(), UserID: dev.ID, Content: "Deep learning in action!", Timestamp: now - day + 5000}}},
		devPost,
	}
	for _, p := range posts {
		if err := contentRepo.Create(ctx, models.ContentTypePost, p); err != nil {
			return fmt.Errorf("failed to create seed post: %w", err)
		}
	}

	videos := []*models.ContentItem{
		{UserID: anna.ID, MediaPath: "/uploads/sample_video_1.mp4", Title: "Digital World Exploration Log 001", Timestamp: now - 12*time.Hour.Milliseconds(), ViewsCount: 1500,
			Comments: []models.Comment{{ID: newID(), UserID: dev.ID, Content: "Superb data flow!", Timestamp: now - 11*time.Hour.Milliseconds()}}},
		{UserID: marco.ID, MediaPath: "/uploads/sample_video_2.mp4", Title: "Binary Dance Protocol Activated", Timestamp: now - 2*time.Hour.Milliseconds(), ViewsCount: 900},
		{UserID: elena.ID, MediaPath: "/uploads/sample_video_1.mp4", Title: "Optimizing Human Performance: Beta Test", Timestamp: now - time.Hour.Milliseconds(), ViewsCount: 2500},
		{UserID: dev.ID, MediaPath: "/uploads/sample_video_2.mp4", Title: "First Upload: Cybernetic Journey Begins", Timestamp: now - 1000},
	}
	for _, v := range videos {
		if err := contentRepo.Create(ctx, models.ContentTypeVideo, v); err != nil {
			return fmt.Errorf("failed to create seed video: %w", err)
		}
	}

	streak := &models.StreakRecord{
		PairKey:                  models.PairKey(dev.ID, anna.ID),
		CurrentStreak:            3,
		LastInteractionTimestamp: now - 12*time.Hour.Milliseconds(),
	}
	if err := pgdb.Create(streak).Error; err != nil {
		return fmt.Errorf("failed to create seed streak: %w", err)
	}

	devStory := stories[3]
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	activities := []*models.Activity{
		{
			Type:      models.ActivityTypeLike,
			FromUser:  models.ActivityActor{ID: marco.ID, Name: marco.Name, Avatar: marco.Avatar},
			Target:    models.ActivityTarget{Type: models.ContentTypePost, ID: devPost.ID, Media: devPost.MediaPath, OwnerID: dev.ID, OwnerName: dev.Name},
			Timestamp: now - 10000,
		},
		{
			Type:      models.ActivityTypeFollow,
			FromUser:  models.ActivityActor{ID: elena.ID, Name: elena.Name, Avatar: elena.Avatar},
			Target:    models.ActivityTarget{Type: models.TargetTypeUser, ID: dev.ID},
			Timestamp: now - 30000,
		},
		{
			Type:           models.ActivityTypeComment,
			FromUser:       models.ActivityActor{ID: anna.ID, Name: anna.Name, Avatar: anna.Avatar},
			Target:         models.ActivityTarget{Type: models.ContentTypePost, ID: devPost.ID, Media: devPost.MediaPath, OwnerID: dev.ID, OwnerName: dev.Name},
			CommentContent: "Excellent data structure!",
			Timestamp:      now - 60000,
		},
		{
			Type:      models.ActivityTypeLike,
			FromUser:  models.ActivityActor{ID: luca.ID, Name: luca.Name, Avatar: luca.Avatar},
			Target:    models.ActivityTarget{Type: models.ContentTypeStory, ID: devStory.ID, Media: devStory.MediaPath, OwnerID: dev.ID, OwnerName: dev.Name},
			Timestamp: now - 120000,
		},
	}
	for _, a := range activities {
		if err := activityRepo.CreateActivity(a); err != nil {
			return fmt.Errorf("failed to create seed activity: %w", err)
		}
	}

	log.Println("Database initialized with sample data.")
	return nil
}
