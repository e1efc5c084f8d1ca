// One-off cleanup: the API stopped serving the legacy images field long ago,
// but old role documents may still carry it. This command unsets it in place.
package main

import (
	"context"
	"fmt"
	"time"

	container "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Container"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger().WithComponent("maintenance")
	config := ctr.GetConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := ctr.GetDatabase(ctx)
	if err != nil {
		logger.FatalWithError(err, "Failed to connect to document store")
	}

	logger.Info("Removing legacy images field from " + config.Mongo.RolesCollection)

	result, err := db.Collection(config.Mongo.RolesCollection).UpdateMany(
		ctx,
		bson.M{"images": bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{"images": ""}},
	)
	if err != nil {
		logger.FatalWithError(err, "Cleanup failed")
	}

	logger.WithFields(map[string]interface{}{
		"matched":  result.MatchedCount,
		"modified": result.ModifiedCount,
	}).Info("Cleanup complete")
}
