package annotate

// DefaultLexicon is the built-in AI-ism phrase list, used when the user
// has not supplied their own. The format is the same one ParseLexicon
// accepts: comment lines, bold section headers and synonym groups.
const DefaultLexicon = `## Commonly used words:

absolutely
abyssal
affection
aftermath
algorithmic
aligned
almost alive
amidst
amiss
ancient
anticipation
apprehension
beacon of hope
cacophony
calculated
calloused fingers
can't help but feel
carried the weight
cascading
cast a warm glow
casual indifference
ceaseless
chilling
clandestine
clenching her jaw
clenching his jaw
crystalline
dance, dances, dancing
delve, delved, delving
depths
down her spine
down his spine
down my spine
dust mote
echo, echoed, echoes, echoing
effortless
enigmatic
ephemeral
etch, etched, etching
ethereal
fleeting
flicker, flickered, flickering
glimmer
glint
gossamer
halcyon
harbinger
hum, hummed, humming
intricate
kaleidoscope
labyrinthine
liminal
maelstrom
palpable
resonate, resonated, resonating
shiver, shivered, shivering
symphony
tapestry
testament
unspoken
visceral
weight of

**Transitional phrases:**

in that moment
for the first time
little did she know
little did he know
as if on cue
without warning
in the blink of an eye
a testament to
it was then that

**Dialogue patterns:**

you're in over your head
this goes deeper than you think
you don't know what you're dealing with
walk away while you still can
it's not what it looks like
trust no one
the truth is out there

**Action sequences:**

adrenaline coursed through his veins
heart pounding in his chest
time slowed to a crawl
training kicked in
muscle memory took over
the gun bucked in his hand
diving for cover
the chase was on`
