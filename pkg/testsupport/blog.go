package testsupport

import "testing/fstest"

// Paths of the fixture collections inside BlogFS.
const (
	PostsDir = "content/posts"
	HomeDir  = "content/home"
)

// BlogFS returns a small bilingual blog: three posts in en and pl sharing
// ids 4, 5 and 6, an en-only "jvm" tag, an en post without an id, and one
// home entry per language.
func BlogFS() fstest.MapFS {
	return fstest.MapFS{
		"content/posts/en/plantuml.md": {Data: []byte(`---
id: 5
title: PlantUML as go-to UML CASE tool
url: plantuml
date: 2019-11-02T10:00:00Z
author: Damian Terlecki
tags:
  - uml
category:
  - other: Misc
---
PlantUML turns text into diagrams.

<img data-src="/img/hq/plantuml.svg" src="/img/lq/plantuml.svg" alt="PlantUML">
`)},
		"content/posts/en/git-monthly-work-log.md": {Data: []byte(`---
id: 6
title: Git monthly work log
url: git-monthly-work-log
date: 2019-12-01T10:00:00Z
tags:
  - git
category:
  - tools: Tools
---
Summing up a month of commits with git log.
`)},
		"content/posts/en/jvm-options.md": {Data: []byte(`---
id: 4
title: JVM options worth knowing
url: jvm-options
date: 2019-10-01T10:00:00Z
updated: 2019-10-20T10:00:00Z
tags:
  - java
  - jvm
category:
  - java: Java
  - other: Misc
---
Heap sizes and garbage collectors.

<img src="/img/jvm.png" alt="JVM">
`)},
		"content/posts/en/no-id.md": {Data: []byte(`---
title: Post without id
url: no-id
date: 2020-01-01T10:00:00Z
tags:
  - orphan
---
Not published.
`)},
		"content/posts/pl/plantuml.md": {Data: []byte(`---
id: 5
title: PlantUML — czarny koń wśród narzędzi UML CASE
url: plantuml
date: 2019-11-02T10:00:00Z
author: Damian Terlecki
tags:
  - uml
category:
  - other: Inne
---
PlantUML zamienia tekst w diagramy.
`)},
		"content/posts/pl/git-ept.md": {Data: []byte(`---
id: 6
title: Miesięczny dziennik pracy w git
url: git-ept
date: 2019-12-01T10:00:00Z
tags:
  - git
category:
  - tools: Narzędzia
---
Podsumowanie miesiąca commitów.
`)},
		"content/posts/pl/jvm-options.md": {Data: []byte(`---
id: 4
title: Opcje JVM warte poznania
url: opcje-jvm
date: 2019-10-01T10:00:00Z
tags:
  - java
category:
  - java: Java
---
Rozmiary sterty i odśmiecacze.
`)},
		"content/home/en/index.md": {Data: []byte(`---
title: A coder's blog
---
Notes on software engineering.
`)},
		"content/home/pl/index.md": {Data: []byte(`---
title: Blog programisty
---
Notatki o inżynierii oprogramowania.
`)},
	}
}
