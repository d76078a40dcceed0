// Package infra contains technical adapters such as the problem file
// codec, MQTT publisher, metrics exporters and persistent stores. These
// packages should depend only on the interfaces defined in the core
// packages.
package infra
