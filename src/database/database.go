package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	StudentCollection       *mongo.Collection
	CourseCollection        *mongo.Collection
	RegistrationCollection  *mongo.Collection
	CandidateCollection     *mongo.Collection
	SessionCollection       *mongo.Collection
	RecordCollection        *mongo.Collection
	OperatorCollection      *mongo.Collection
	SessionReportCollection *mongo.Collection
)

const DBName = "BioattendDB"

// ConnectMongoDB connects once and wires the shared collection handles.
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")

		StudentCollection = GetCollection(DBName, "students")
		CourseCollection = GetCollection(DBName, "courses")
		RegistrationCollection = GetCollection(DBName, "registrations")
		CandidateCollection = GetCollection(DBName, "candidates")
		SessionCollection = GetCollection(DBName, "attendanceSessions")
		RecordCollection = GetCollection(DBName, "attendanceRecords")
		OperatorCollection = GetCollection(DBName, "operators")
		SessionReportCollection = GetCollection(DBName, "sessionReports")
	})

	return connectErr
}

// GetCollection returns a collection handle from the shared client.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
