// Package examples provides reference implementations demonstrating how
// to drive OpenRGB daemons with the orgb-go client.
//
// The implementations show:
//   - Switching devices to direct control before pushing colors
//   - Whole-device color updates sized from TotalLEDCount
//   - Frame-paced animation over UpdateLEDs
//
// Available examples:
//   - Fill: set every LED of every device to one color
//   - Rainbow: animate a moving rainbow across each device
//
// These can serve as templates for building real lighting clients.
package examples
