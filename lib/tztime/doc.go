/*Package tztime defines the tztime module for Starlark: timezone-aware
instants with calendar arithmetic, for scripts embedded in programs that
keep time as a count of seconds.

  outline: tztime
    tztime defines timezone-aware instants
    path: tztime
    functions:
      now() instant
        the current time, UTC
      create(year, month, day, hour=0, minute=0, second=0, tz=None) instant
        an instant from calendar fields; out-of-range fields are normalized;
        fails if year precedes the platform epoch
      instant(seconds, tz=None) instant
        an instant from a raw second count; fails for non-integers
      timezone(name) timezone
        a predefined zone, such as "US/Eastern" or "Europe/Central"
      zones() list
        the names accepted by timezone
      rule(abbrev, week, weekday, month, hour, offset) rule
        a yearly transition, e.g. rule("EDT", "second", "sunday", 3, 2, -240)
      zone(dst, std, name="") timezone
        a timezone from two rules
      utc
        None, the zone of instants without a timezone

    types:
      instant
        fields:
          year int
          month int
          day int
          hour int
          minute int
          second int
          day_of_week int (Monday == 0)
          seconds int
          offset int (minutes east of UTC)
          tz timezone
        functions:
          is_dst() bool
          is_std() bool
          to_utc() instant
          to_timezone(tz) instant
            the same moment in another zone
          with_timezone(tz) instant
            the same wall-clock reading in another zone
          seconds_between(other) int
          iso8601() string
          plus_years(n), plus_months(n), plus_days(n),
          plus_hours(n), plus_minutes(n), plus_seconds(n) instant
          with_year(n), with_month(n), with_day(n),
          with_hour(n), with_minute(n), with_second(n) instant
        operators:
          instant == instant = boolean
          instant < instant = boolean
          instant + int = instant
          instant - int = instant
          instant - instant = int
      timezone
        fields:
          name string
          std_offset int
          dst_offset int
          observes_dst bool
        functions:
          is_dst(instant) bool
      rule
        fields:
          abbrev string
          week string
          weekday string
          month int
          hour int
          offset int
*/
package tztime // import "go.tztime.net/lib/tztime"
