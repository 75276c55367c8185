package model

import "arogyachat/platform"

func InstallDB() {
	db := platform.DB
	if err := db.AutoMigrate(
		&User{},
		&Message{},
		&Appointment{},
		&Document{}); err != nil {
		panic(err)
	}
}
