package dispatch

// legacyAliases maps the dotted command names older clients still send to
// their registry names. Names not present here are looked up verbatim.
var legacyAliases = map[string]string{
	"project.info":         "level_get_project_info",
	"asset.list":           "asset_list_assets",
	"asset.info":           "asset_get_asset_info",
	"level.actors":         "level_get_level_actors",
	"level.save":           "level_save_level",
	"level.outliner":       "level_get_outliner_structure",
	"actor.spawn":          "actor_spawn",
	"actor.create":         "actor_spawn",
	"actor.delete":         "actor_delete",
	"actor.modify":         "actor_modify",
	"actor.duplicate":      "actor_duplicate",
	"actor.organize":       "actor_organize",
	"viewport.screenshot":  "viewport_screenshot",
	"viewport.camera":      "viewport_set_camera",
	"viewport.mode":        "viewport_set_mode",
	"viewport.focus":       "viewport_focus_on_actor",
	"viewport.render_mode": "viewport_set_render_mode",
	"viewport.bounds":      "viewport_get_bounds",
	"viewport.fit":         "viewport_fit_actors",
	"viewport.look_at":     "viewport_look_at_target",
	"system.restart":       "system_restart_listener",
	"system.help":          "system_help",
	"system.test":          "system_test_connection",
	"system.logs":          "system_ue_logs",
}

// resolveAlias translates a legacy dotted command name to its registry name.
func resolveAlias(name string) string {
	if mapped, ok := legacyAliases[name]; ok {
		return mapped
	}
	return name
}
