// Package services contains the business logic layer.
//
// Services defined in this package:
// - EnrollmentService: registration, roster reads and roster mutations
// - AuthService: login and refresh token rotation
// - UserDataService: principal lookup for the authentication layer
package services
