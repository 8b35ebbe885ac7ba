package common

// AppName is the product name shown in the client banner.
const AppName = "CampusStore"

// AppTagline is printed under the banner.
const AppTagline = "Your Campus App Hub"
