package services

import "errors"

// Caller-safe action errors. Messages are shown to end users as is; the
// underlying cause is only logged.
var (
	ErrAuthFieldsRequired = errors.New("all fields are mandatory")
	ErrWrongCredentials   = errors.New("wrong credentials")
	ErrCredentialsExist   = errors.New("credentials already exist")
	ErrAuthFailed         = errors.New("authentication failed")

	ErrUnauthenticated = errors.New("not authenticated")
	ErrFieldsRequired  = errors.New("all fields are required")

	ErrInventoryNotSaved    = errors.New("failed to create inventory")
	ErrTransferInventory    = errors.New("failed to transfer inventory")
	ErrTrackOrderNotCreated = errors.New("failed to update track order")
	ErrTransferFailed       = errors.New("failed to update the user and inventory")

	ErrUserNotFound   = errors.New("User not found")
	ErrUserNotUpdated = errors.New("user not updated")

	ErrInventoryNotDeleted  = errors.New("inventory not deleted")
	ErrUserNotDeleted       = errors.New("user not deleted")
	ErrTrackOrderNotDeleted = errors.New("track order not deleted")
)
