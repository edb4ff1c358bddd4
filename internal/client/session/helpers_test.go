package session

import "github.com/dmitrijs2005/umsclient/internal/client/models"

func recAlice() models.UserRecord {
	return models.UserRecord{
		ID:             "u1",
		Username:       "alice",
		Email:          "a@x.com",
		ProfilePicture: "u0",
	}
}
