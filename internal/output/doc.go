// Package output writes the three run artifacts: the moderated CSV,
// the plain-text summary report, and the offense-type pie chart PNG.
package output
