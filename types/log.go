package types

// SuccessField marks log entries that report a successful outcome. The console
// formatter renders them with the SUCCESS label.
const SuccessField = "success"
