// Package domain models heatwave risk inference over weather and sensor data.
//
// # Data Sources
//
// Daily forecast features come from the Open-Meteo forecast API
// (https://api.open-meteo.com/v1/forecast), requested for exactly one forecast
// day. An optional hardware temperature sensor pushes readings over HTTP; the
// service keeps only the single most recent reading.
//
// # Feature Vector
//
// The classifier was trained on a fixed-order 5-dimensional vector:
//
//	[temperature_2m_max, temperature_2m_min, wind_speed_10m_max,
//	 wind_gusts_10m_max, precipitation_sum]
//
// Temperatures are °C, wind values km/h (provider units passed through
// unchanged), precipitation mm. The order must match [FeatureNames]
// byte-for-byte: the model has no runtime defense against reordering, and a
// swapped column silently corrupts every prediction. The artifact loader
// cross-checks the artifact's "features" list against [FeatureNames] at load
// time.
//
// # Risk Labels
//
// The classifier emits a 3-class categorical distribution. Class indices map
// to labels as 0 → Low, 1 → Medium, 2 → High, and the reported risk code is
// always the argmax of the distribution.
//
// # Sensor Liveness
//
// A reading is "connected" while it is at most [DefaultStaleAfter] old.
// Status is derived lazily at read time from (observed_at, now); there is no
// background timer, so two reads with no intervening write can legitimately
// report different statuses. This lazy flip is the only liveness detection
// mechanism.
//
// # Data Source Tags
//
// Predictions record the provenance of the max-temperature feature:
// [DataSourceSensor] when a pushed sensor reading was substituted,
// [DataSourceOpenMeteo] when the forecast value was used.
package domain
