package schema

import "fmt"

// Common is the field catalog shared by every log category
var Common = Table{
	// envelope
	"timestamp":  Of(FieldTypeDate),
	"raw_size":   Of(FieldTypeLong),
	"crid":       Of(FieldTypeKeyword),
	"crsrc":      Of(FieldTypeKeyword),
	"env":        Of(FieldTypeKeyword),
	"hostname":   Of(FieldTypeKeyword),
	"project":    Of(FieldTypeKeyword),
	"topic":      Unindexed(FieldTypeKeyword), // same value across an index
	"via":        Unindexed(FieldTypeKeyword),
	"keyword":    Of(FieldTypeText),
	"message":    Unindexed(FieldTypeText),
	"x_instance": Of(FieldTypeKeyword),

	// application
	"x_target_project":  Of(FieldTypeKeyword),
	"x_thread_name":     Of(FieldTypeKeyword),
	"x_class_name":      Of(FieldTypeKeyword),
	"x_class_line":      Of(FieldTypeLong),
	"x_method_name":     Of(FieldTypeKeyword),
	"x_exception_class": Of(FieldTypeKeyword),
	"x_exception_stack": Of(FieldTypeText),
	"x_duration":        Of(FieldTypeLong), // milliseconds
	"x_host":            Of(FieldTypeKeyword),

	// http
	"x_header_app_info":   Unindexed(FieldTypeText),
	"x_header_user_token": Unindexed(FieldTypeKeyword),
	"x_method":            Of(FieldTypeKeyword), // also used for SQL verbs
	"x_params":            Of(FieldTypeText),
	"x_path":              Of(FieldTypeKeyword),
	"x_path_digest":       Of(FieldTypeKeyword),
	"x_query":             Unindexed(FieldTypeText),
	"x_status":            Of(FieldTypeLong),
	"x_ip":                Of(FieldTypeIP),

	// audit
	"x_user_code":     Of(FieldTypeKeyword),
	"x_user_name":     Of(FieldTypeKeyword),
	"x_action":        Of(FieldTypeKeyword),
	"x_action_detail": Of(FieldTypeText),
	"x_url":           Of(FieldTypeKeyword),

	// sql
	"x_affected_rows": Of(FieldTypeLong),
	"x_database_url":  Unindexed(FieldTypeText),
	"x_db_host":       Of(FieldTypeKeyword),
	"x_db_name":       Of(FieldTypeKeyword),
	"x_sql":           Unindexed(FieldTypeText),
	"x_sql_digest":    Of(FieldTypeKeyword),
	"x_raw_sql":       Unindexed(FieldTypeText),

	// mysql error log
	"x_level":     Of(FieldTypeKeyword),
	"x_file":      Of(FieldTypeKeyword),
	"x_thread_id": Of(FieldTypeLong),

	// nginx
	"x_body_bytes_sent":        Of(FieldTypeLong),
	"x_http_host":              Of(FieldTypeKeyword),
	"x_http_referer":           Unindexed(FieldTypeText),
	"x_http_user_agent":        Unindexed(FieldTypeText),
	"x_http_x_forwarded_for":   Unindexed(FieldTypeKeyword),
	"x_protocol":               Of(FieldTypeKeyword),
	"x_remote_addr":            Of(FieldTypeKeyword),
	"x_request_time":           Of(FieldTypeLong),
	"x_upstream_addr":          Of(FieldTypeKeyword),
	"x_upstream_response_time": Of(FieldTypeLong),
	"x_response_size":          Of(FieldTypeLong),

	"x_value_integer": Of(FieldTypeLong),

	// redis
	"x_cmd":              Of(FieldTypeKeyword),
	"x_cmd_digest":       Of(FieldTypeKeyword),
	"x_key":              Of(FieldTypeKeyword),
	"x_param_value":      Unindexed(FieldTypeText),
	"x_param_value_size": Of(FieldTypeLong),

	"x_logtube_version": Of(FieldTypeKeyword),
	"x_lifecycle":       Of(FieldTypeKeyword), // boot, logtube-reload
}

// MessageIndexed makes the message body searchable. Applied on top of
// Common for the error and fatal categories.
var MessageIndexed = Table{
	"message": Of(FieldTypeText),
}

// Overlays holds the tables a category can layer on top of Common, by name
var Overlays = map[string]Table{
	"message_indexed": MessageIndexed,
}

// Overlay looks up a named overlay table
func Overlay(name string) (Table, error) {
	t, ok := Overlays[name]
	if !ok {
		return nil, fmt.Errorf("unknown overlay %q", name)
	}
	return t, nil
}
