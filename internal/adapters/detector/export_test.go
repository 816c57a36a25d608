package detector

// Detect exposes detect for tests that cannot attach a terminal.
var Detect = detect
