// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is shown in page titles and the header when no site name is configured.
const DefaultSiteName = "GameCenter"

// DefaultFeedbackEmail receives link-problem reports sent by mail.
const DefaultFeedbackEmail = "apkscc-feedback@foxmail.com"
