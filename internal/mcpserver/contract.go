package mcpserver

// ActivityFormatContract describes the canonical activity record format
// that LLM consumers should follow when recording activities.
const ActivityFormatContract = `# Dagaz Activity Record Contract

Every activity recorded in Dagaz follows this structure.

## Record

- **date** — calendar date only, ISO ` + "`" + `YYYY-MM-DD` + "`" + ` (no time of day).
- **type** — one of ` + "`" + `post` + "`" + `, ` + "`" + `project` + "`" + `, ` + "`" + `update` + "`" + `, ` + "`" + `media` + "`" + `.
- **title** — short display text.
- **description** — optional longer text.
- **intensity** — 1 (light), 2 (medium), 3 (high), 4 (intense); the
  author-declared importance of this specific event.

## Rules

1. **One record per (date, type).** Recording a second activity with the
   same date and type merges it into the existing record: intensity becomes
   the maximum of old and new, title and description are replaced, the ID
   is preserved.
2. **The track tools always use today's date.** ` + "`" + `track_blog_post` + "`" + ` and
   ` + "`" + `track_project` + "`" + ` record intensity 3 for new work and 2 for edits;
   ` + "`" + `track_media` + "`" + ` always records intensity 1.
3. **Displayed intensity differs from stored intensity.** The calendar
   resolves each day from its full activity list: one activity caps at 2,
   two activities show max+1 capped at 3, three or more always show 4.
4. **Streaks anchor at today or yesterday.** A gap of two or more days
   resets the streak to zero; there is no partial credit.
`
