package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Taipei")
	if err != nil {
		panic(err)
	}
}

// pin the clock to the catalog site's timezone so that "N 天前" style
// upload dates resolve against the same day boundaries the site uses,
// no matter where the process happens to run.
func Now() time.Time {
	return time.Now().In(Location)
}
