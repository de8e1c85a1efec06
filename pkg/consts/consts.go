package consts

import "time"

const (
	ParamDate      = "date"
	ParamThumbs    = "thumbs"
	ParamTarget    = "target"
	ParamTelescope = "telescope"
	ParamLimit     = "limit"
	ParamName      = "name"
	ApiKey         = "api_key"

	TimeFormat = "2006-01-02"

	DemoKey      = "DEMO_KEY"
	NasaApiKey   = "NASA_API_KEY"
	APODURL      = "https://api.nasa.gov/planetary/apod"
	MASTURL      = "https://mast.stsci.edu"
	MASTInvoke   = "/api/v0/invoke"
	MASTDownload = "/api/v0.1/Download/file"

	// APOD публикуется по времени восточного побережья
	APODTimeZone = "America/New_York"

	DefaultLimit = 30
	MaxLimit     = 100

	CacheTTL = time.Hour

	True = "true"
)

// первая запись APOD
var APODFirstDay = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)
